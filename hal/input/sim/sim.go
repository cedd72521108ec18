// Package sim is the input HAL's simulation backend: a fixed-size
// module-level device table with a TestInjectEvent helper, mirroring
// device/hal/fifo and host/hal/fifo's testing-backend pattern.
package sim

import (
	"context"
	"sync"

	"github.com/ardnew/emberhal/hal/input"
	"github.com/ardnew/emberhal/osal"
	"github.com/ardnew/emberhal/pkg"
)

// MaxDevices bounds the simulation backend's fixed device table.
const MaxDevices = 8

// Backend is the input HAL's test double: an enumerable device table
// and handle lifecycle, with TestInjectEvent driving the same
// delivery path a real backend's interrupt handler would use.
type Backend struct {
	mu      sync.Mutex
	devices [MaxDevices]input.Device
	count   int
	opened  map[int]*input.Handle
}

// New creates an empty simulation backend.
func New() *Backend {
	return &Backend{opened: make(map[int]*input.Handle)}
}

func (b *Backend) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count = 0
	b.opened = make(map[int]*input.Handle)
	return nil
}

func (b *Backend) Deinit() error {
	return b.Init(context.Background())
}

// AddDevice registers a device in the fixed table, for test setup.
func (b *Backend) AddDevice(d input.Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count >= MaxDevices {
		return pkg.ErrNoMemory
	}
	b.devices[b.count] = d
	b.count++
	return nil
}

func (b *Backend) DeviceCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *Backend) Device(index int) (input.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= b.count {
		return input.Device{}, pkg.ErrInvalidParameter
	}
	return b.devices[index], nil
}

func (b *Backend) FindDevice(deviceType input.DeviceType) (input.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < b.count; i++ {
		if b.devices[i].Type == deviceType {
			return b.devices[i], nil
		}
	}
	return input.Device{}, pkg.ErrNotPresent
}

func (b *Backend) Open(deviceID int, onEvent input.OnEventFunc, group *osal.EventGroup, bit uint32) (*input.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.opened[deviceID]; busy {
		return nil, pkg.ErrBusy
	}
	var device *input.Device
	for i := 0; i < b.count; i++ {
		if b.devices[i].ID == deviceID {
			device = &b.devices[i]
			break
		}
	}
	if device == nil {
		return nil, pkg.ErrInvalidParameter
	}
	h := input.NewHandle(*device, onEvent, group, bit)
	b.opened[deviceID] = h
	return h, nil
}

func (b *Backend) Close(h *input.Handle) error {
	if h == nil {
		return pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.opened, input.DeviceID(h))
	return nil
}

// TestInjectEvent delivers ev on deviceID's open handle, if any. It is
// a no-op if deviceID has no open handle, so tests can inject events
// before and after Open without special-casing.
func (b *Backend) TestInjectEvent(deviceID int, ev input.Event) {
	b.mu.Lock()
	h, open := b.opened[deviceID]
	b.mu.Unlock()
	if !open {
		return
	}
	input.Deliver(h, ev)
}

// TestReset clears all tables.
func (b *Backend) TestReset() {
	b.Init(context.Background())
}

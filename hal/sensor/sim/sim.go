// Package sim is the sensor HAL's simulation backend: a fixed-size
// module-level device table with a TestInjectData helper feeding a
// per-session sample queue, mirroring device/hal/fifo and
// host/hal/fifo's testing-backend pattern.
package sim

import (
	"context"
	"sync"

	"github.com/ardnew/emberhal/hal/sensor"
	"github.com/ardnew/emberhal/pkg"
)

// MaxDevices bounds the simulation backend's fixed device table.
const MaxDevices = 8

// Backend is the sensor HAL's test double: an enumerable device table
// plus a single-reader session per device backed by a small sample
// queue that TestInjectData fills and Read drains.
type Backend struct {
	mu       sync.Mutex
	devices  [MaxDevices]sensor.Device
	count    int
	sessions map[int]*sensor.Session
	queue    map[int][]sensor.Sample
}

// New creates an empty simulation backend.
func New() *Backend {
	return &Backend{
		sessions: make(map[int]*sensor.Session),
		queue:    make(map[int][]sensor.Sample),
	}
}

func (b *Backend) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count = 0
	b.sessions = make(map[int]*sensor.Session)
	b.queue = make(map[int][]sensor.Sample)
	return nil
}

func (b *Backend) Deinit() error {
	return b.Init(context.Background())
}

// AddDevice registers a device in the fixed table, for test setup.
func (b *Backend) AddDevice(d sensor.Device) error {
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

func (b *Backend) Device(index int) (sensor.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= b.count {
		return sensor.Device{}, pkg.ErrInvalidParameter
	}
	return b.devices[index], nil
}

func (b *Backend) FindDevice(deviceType sensor.DeviceType) (sensor.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < b.count; i++ {
		if b.devices[i].Type == deviceType {
			return b.devices[i], nil
		}
	}
	return sensor.Device{}, pkg.ErrNotPresent
}

func (b *Backend) Open(deviceID int, samplePeriodMs int64) (*sensor.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.sessions[deviceID]; busy {
		return nil, pkg.ErrBusy
	}
	var device *sensor.Device
	for i := 0; i < b.count; i++ {
		if b.devices[i].ID == deviceID {
			device = &b.devices[i]
			break
		}
	}
	if device == nil {
		return nil, pkg.ErrInvalidParameter
	}
	s := sensor.NewSession(*device, samplePeriodMs)
	b.sessions[deviceID] = s
	return s, nil
}

func (b *Backend) Close(s *sensor.Session) error {
	if s == nil {
		return pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := sensor.DeviceID(s)
	delete(b.sessions, id)
	delete(b.queue, id)
	return nil
}

// Read returns the next queued sample for s, or not-present if none
// has been injected. There is no blocking wait in this backend; tests
// drive the queue explicitly.
func (b *Backend) Read(ctx context.Context, s *sensor.Session) (sensor.Sample, error) {
	if s == nil {
		return sensor.Sample{}, pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := sensor.DeviceID(s)
	q := b.queue[id]
	if len(q) == 0 {
		return sensor.Sample{}, pkg.ErrNotPresent
	}
	sample := q[0]
	b.queue[id] = q[1:]
	return sample, nil
}

// TestInjectData appends a sample to deviceID's queue, to be returned
// by a subsequent Read on that device's open session.
func (b *Backend) TestInjectData(deviceID int, sample sensor.Sample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue[deviceID] = append(b.queue[deviceID], sample)
}

// TestReset clears all tables and queued samples.
func (b *Backend) TestReset() {
	b.Init(context.Background())
}

// Package gpio is the input HAL's real backend for button-style
// devices, driven by github.com/warthog618/go-gpiocdev against the
// Linux GPIO character device ABI. Device enumeration goes through
// hal/internal/udevdiscover's "gpio" subsystem scan, the same helper
// hal/display's real backend uses for its own subsystem.
//
//go:build linux

package gpio

import (
	"context"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/ardnew/emberhal/hal/input"
	"github.com/ardnew/emberhal/hal/internal/udevdiscover"
	"github.com/ardnew/emberhal/osal"
	"github.com/ardnew/emberhal/pkg"
)

// Line pairs a logical input.Device with the chip/offset go-gpiocdev
// needs to request it.
type Line struct {
	Device input.Device
	Chip   string
	Offset int
}

// Backend implements input.Backend over real GPIO lines. Lines must
// be supplied at construction — discovery only tells you which
// gpiochips exist, not which offset is wired to which button.
type Backend struct {
	mu     sync.Mutex
	lines  []Line
	opened map[int]*gpiocdev.Line
}

// New creates a backend over the given fixed line table.
func New(lines []Line) *Backend {
	return &Backend{lines: lines, opened: make(map[int]*gpiocdev.Line)}
}

// DiscoverChips lists gpiochip devices visible to udev, for
// diagnostics or dynamic Line table construction.
func DiscoverChips() ([]udevdiscover.Entry, error) {
	return udevdiscover.Subsystem("gpio")
}

func (b *Backend) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = make(map[int]*gpiocdev.Line)
	return nil
}

func (b *Backend) Deinit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.opened {
		l.Close()
	}
	b.opened = make(map[int]*gpiocdev.Line)
	return nil
}

func (b *Backend) DeviceCount() int {
	return len(b.lines)
}

func (b *Backend) Device(index int) (input.Device, error) {
	if index < 0 || index >= len(b.lines) {
		return input.Device{}, pkg.ErrInvalidParameter
	}
	return b.lines[index].Device, nil
}

func (b *Backend) FindDevice(deviceType input.DeviceType) (input.Device, error) {
	for _, l := range b.lines {
		if l.Device.Type == deviceType {
			return l.Device, nil
		}
	}
	return input.Device{}, pkg.ErrNotPresent
}

// Open requests the GPIO line backing deviceID as an input with
// both-edge event detection, wiring each edge into onEvent and the
// shared event-group bit.
func (b *Backend) Open(deviceID int, onEvent input.OnEventFunc, group *osal.EventGroup, bit uint32) (*input.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, busy := b.opened[deviceID]; busy {
		return nil, pkg.ErrBusy
	}

	var line *Line
	for i := range b.lines {
		if b.lines[i].Device.ID == deviceID {
			line = &b.lines[i]
			break
		}
	}
	if line == nil {
		return nil, pkg.ErrInvalidParameter
	}

	h := input.NewHandle(line.Device, onEvent, group, bit)

	l, err := gpiocdev.RequestLine(line.Chip, line.Offset,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			value := int32(0)
			if evt.Type == gpiocdev.LineEventRisingEdge {
				value = 1
			}
			input.Deliver(h, input.Event{DeviceID: deviceID, Value: value})
		}),
	)
	if err != nil {
		return nil, pkg.ErrGeneric
	}

	b.opened[deviceID] = l
	return h, nil
}

func (b *Backend) Close(h *input.Handle) error {
	if h == nil {
		return pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := input.DeviceID(h)
	if l, ok := b.opened[id]; ok {
		l.Close()
		delete(b.opened, id)
	}
	return nil
}

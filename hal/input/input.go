package input

import (
	"context"

	"github.com/ardnew/emberhal/osal"
)

// DeviceType names the class of an input device.
type DeviceType int

const (
	DeviceTypeButton DeviceType = iota
	DeviceTypeTouch
	DeviceTypeEncoder
)

// Device describes one enumerable input device.
type Device struct {
	ID   int
	Name string
	Type DeviceType
}

// Event is one value posted by a device. For DeviceTypeButton, Value
// is 0/1 (released/pressed); for DeviceTypeEncoder it is a signed
// delta; for DeviceTypeTouch it is a packed x<<16|y.
type Event struct {
	DeviceID int
	Value    int32
}

// OnEventFunc is invoked once per event. Per the shared HAL
// callback-context rules it runs off the caller's thread and must not
// block; it typically just sets a bit in an [osal.EventGroup].
type OnEventFunc func(ev Event)

// Handle is a caller-visible open input device session.
type Handle struct {
	device  Device
	onEvent OnEventFunc
	bit     uint32
	group   *osal.EventGroup
	closed  bool
}

// Backend is implemented once per input HAL backend (a sim.Backend
// for tests; a real backend build-tag-gated outside this package when
// one is wired, e.g. hal/input/gpio).
type Backend interface {
	Init(ctx context.Context) error
	Deinit() error

	DeviceCount() int
	Device(index int) (Device, error)
	FindDevice(deviceType DeviceType) (Device, error)

	// Open arms deviceID. Events fire onEvent and, if group is
	// non-nil, set bit in group — the wiring spec.md §9 calls "post
	// events" for input-device callbacks.
	Open(deviceID int, onEvent OnEventFunc, group *osal.EventGroup, bit uint32) (*Handle, error)
	Close(h *Handle) error
}

// NewHandle constructs a Handle for a backend's Open implementation.
func NewHandle(device Device, onEvent OnEventFunc, group *osal.EventGroup, bit uint32) *Handle {
	return &Handle{device: device, onEvent: onEvent, bit: bit, group: group}
}

// DeviceID returns the device ID a handle was opened against.
func DeviceID(h *Handle) int {
	return h.device.ID
}

// Deliver posts ev to h's callback and event-group bit. Backends call
// this on whatever thread observes the underlying hardware event.
func Deliver(h *Handle, ev Event) {
	if h.onEvent != nil {
		h.onEvent(ev)
	}
	if h.group != nil {
		h.group.Set(h.bit)
	}
}

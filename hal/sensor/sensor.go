package sensor

import "context"

// DeviceType names the class of a sensor device.
type DeviceType int

const (
	DeviceTypeAccelerometer DeviceType = iota
	DeviceTypeTemperature
	DeviceTypeLight
)

// Device describes one enumerable sensor device.
type Device struct {
	ID   int
	Name string
	Type DeviceType
}

// Sample is one reading from an open session.
type Sample struct {
	DeviceID  int
	Timestamp int64 // osal.NowMs() at capture time
	Values    [3]float32
}

// Session is a caller-visible single-reader open sensor handle.
type Session struct {
	device      Device
	samplePerMs int64
	closed      bool
}

// Backend is implemented once per sensor HAL backend (a sim.Backend
// for tests; a real I2C/SPI sensor backend build-tag-gated outside
// this package when one is wired).
type Backend interface {
	Init(ctx context.Context) error
	Deinit() error

	DeviceCount() int
	Device(index int) (Device, error)
	FindDevice(deviceType DeviceType) (Device, error)

	// Open arms deviceID at the given sample period. A device that
	// already has an active session returns busy — sensor sessions
	// never multiplex.
	Open(deviceID int, samplePeriodMs int64) (*Session, error)
	Close(s *Session) error

	// Read blocks, per ctx, for the next sample.
	Read(ctx context.Context, s *Session) (Sample, error)
}

// NewSession constructs a Session for a backend's Open implementation.
func NewSession(device Device, samplePeriodMs int64) *Session {
	return &Session{device: device, samplePerMs: samplePeriodMs}
}

// DeviceID returns the device ID a session was opened against.
func DeviceID(s *Session) int {
	return s.device.ID
}

// SamplePeriodMs returns the period a session was opened with.
func SamplePeriodMs(s *Session) int64 {
	return s.samplePerMs
}

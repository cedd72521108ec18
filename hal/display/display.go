package display

import "context"

// PixelFormat names a framebuffer's pixel encoding.
type PixelFormat int

const (
	PixelFormatRGB565 PixelFormat = iota
	PixelFormatARGB8888
)

// Layer describes one enumerable display layer.
type Layer struct {
	ID     int
	Name   string
	ZOrder int
	Format PixelFormat
	Width  int
	Height int
}

// VsyncFunc is invoked once per committed frame and must not block.
// Which goroutine runs it is up to the backend: the sim backend calls
// it synchronously from Commit, on the committing goroutine.
type VsyncFunc func(layerID int, frame uint64)

// Handle is a caller-visible open display layer.
type Handle struct {
	layer  Layer
	onSync VsyncFunc
	closed bool
}

// Backend is implemented once per display HAL backend (a sim.Backend
// for tests; a real compositor/DRM backend build-tag-gated outside
// this package when one is wired).
type Backend interface {
	Init(ctx context.Context) error
	Deinit() error

	LayerCount() int
	Layer(index int) (Layer, error)
	FindLayer(zOrder int) (Layer, error)

	Open(layerID int, onSync VsyncFunc) (*Handle, error)
	Close(h *Handle) error

	// Commit pushes framebuffer pixel data for the layer and invokes
	// the handle's vsync callback once the frame lands.
	Commit(ctx context.Context, h *Handle, framebuffer []byte) error
}

// NewHandle constructs a Handle for a backend's Open implementation.
func NewHandle(layer Layer, onSync VsyncFunc) *Handle {
	return &Handle{layer: layer, onSync: onSync}
}

// LayerID returns the layer ID a handle was opened against.
func LayerID(h *Handle) int {
	return h.layer.ID
}

// FireVsync invokes h's vsync callback, if one was registered at Open.
// Backends call this once a committed frame lands; per the shared
// callback-context rules it must not block the caller.
func FireVsync(h *Handle, layerID int, frame uint64) {
	if h.onSync != nil {
		h.onSync(layerID, frame)
	}
}

// Package sim is the display HAL's simulation backend: a fixed-size
// module-level layer table with injection helpers for unit tests,
// mirroring device/hal/fifo and host/hal/fifo's testing-backend
// pattern.
package sim

import (
	"context"
	"sync"

	"github.com/ardnew/emberhal/hal/display"
	"github.com/ardnew/emberhal/pkg"
)

// MaxLayers bounds the simulation backend's fixed layer table.
const MaxLayers = 8

// Backend is the display HAL's test double: an enumerable layer
// table, handle lifecycle, and a captured framebuffer per layer that
// tests can inspect via TestGetFramebuffer.
type Backend struct {
	mu     sync.Mutex
	layers [MaxLayers]display.Layer
	count  int
	opened map[int]*display.Handle
	frames map[int][]byte
	frame  uint64
}

// New creates an empty simulation backend.
func New() *Backend {
	return &Backend{
		opened: make(map[int]*display.Handle),
		frames: make(map[int][]byte),
	}
}

func (b *Backend) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count = 0
	b.opened = make(map[int]*display.Handle)
	b.frames = make(map[int][]byte)
	b.frame = 0
	return nil
}

func (b *Backend) Deinit() error {
	return b.Init(context.Background())
}

// AddLayer registers a layer in the fixed table, for test setup.
func (b *Backend) AddLayer(l display.Layer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count >= MaxLayers {
		return pkg.ErrNoMemory
	}
	b.layers[b.count] = l
	b.count++
	return nil
}

func (b *Backend) LayerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *Backend) Layer(index int) (display.Layer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= b.count {
		return display.Layer{}, pkg.ErrInvalidParameter
	}
	return b.layers[index], nil
}

func (b *Backend) FindLayer(zOrder int) (display.Layer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < b.count; i++ {
		if b.layers[i].ZOrder == zOrder {
			return b.layers[i], nil
		}
	}
	return display.Layer{}, pkg.ErrNotPresent
}

func (b *Backend) Open(layerID int, onSync display.VsyncFunc) (*display.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.opened[layerID]; busy {
		return nil, pkg.ErrBusy
	}
	var layer *display.Layer
	for i := 0; i < b.count; i++ {
		if b.layers[i].ID == layerID {
			layer = &b.layers[i]
			break
		}
	}
	if layer == nil {
		return nil, pkg.ErrInvalidParameter
	}
	h := display.NewHandle(*layer, onSync)
	b.opened[layerID] = h
	return h, nil
}

func (b *Backend) Close(h *display.Handle) error {
	if h == nil {
		return pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.opened, display.LayerID(h))
	delete(b.frames, display.LayerID(h))
	return nil
}

func (b *Backend) Commit(ctx context.Context, h *display.Handle, framebuffer []byte) error {
	if h == nil {
		return pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	id := display.LayerID(h)
	if _, open := b.opened[id]; !open {
		b.mu.Unlock()
		return pkg.ErrInvalidParameter
	}
	b.frames[id] = append([]byte(nil), framebuffer...)
	b.frame++
	frame := b.frame
	b.mu.Unlock()

	display.FireVsync(h, id, frame)
	return nil
}

// TestGetFramebuffer returns the last committed framebuffer for
// layerID, or nil if nothing has been committed.
func (b *Backend) TestGetFramebuffer(layerID int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.frames[layerID]...)
}

// TestReset clears all tables and captured frames.
func (b *Backend) TestReset() {
	b.Init(context.Background())
}

package audio

import (
	"context"
	"sync"

	"github.com/ardnew/emberhal/mixer"
	"github.com/ardnew/emberhal/pkg"
)

// MixedBackend is the production audio backend: a fixed port table
// plus a [mixer.Mixer] that opening a port with MixerSlot != SlotBypass
// multiplexes onto. Ports with MixerSlot == SlotBypass instead drive
// hwWrite directly and support at most one open handle at a time.
type MixedBackend struct {
	mu       sync.Mutex
	ports    []Port
	mix      *mixer.Mixer
	hwWrite  mixer.HWWrite
	bypassed map[int]*Handle // portID -> active handle, for bypass ports
}

// NewMixedBackend creates a backend over the given fixed port table. If
// any port uses the mixer, mixCfg configures the shared [mixer.Mixer];
// hwWrite is the ultimate hardware sink, invoked either by the mixer
// (mixer-backed ports) or directly (bypass ports). All mixer slots
// start deactivated, since [mixer.New] otherwise leaves them active by
// default for the mixer package's own standalone use — here, slot
// activity is this backend's sole "in use" bookkeeping, and an Open
// must see every slot as free until handed out.
func NewMixedBackend(ports []Port, mixCfg mixer.Config, hwWrite mixer.HWWrite) *MixedBackend {
	mix := mixer.New(mixCfg, hwWrite)
	for i := 0; i < mixCfg.MaxSlots; i++ {
		mix.SetActive(i, false)
	}
	return &MixedBackend{
		ports:    ports,
		mix:      mix,
		hwWrite:  hwWrite,
		bypassed: make(map[int]*Handle),
	}
}

// Init starts the backing mixer thread.
func (b *MixedBackend) Init(ctx context.Context) error {
	if status := b.mix.Start(); status != pkg.StatusOK {
		return status.Err()
	}
	return nil
}

// Deinit stops the mixer and clears all bypass handle state.
func (b *MixedBackend) Deinit() error {
	b.mu.Lock()
	b.bypassed = make(map[int]*Handle)
	b.mu.Unlock()
	return b.mix.Stop(1000).Err()
}

// PortCount returns the number of enumerable ports.
func (b *MixedBackend) PortCount() int {
	return len(b.ports)
}

// Port returns the port at index.
func (b *MixedBackend) Port(index int) (Port, error) {
	if index < 0 || index >= len(b.ports) {
		return Port{}, pkg.ErrInvalidParameter
	}
	return b.ports[index], nil
}

// FindPort returns the first port matching direction.
func (b *MixedBackend) FindPort(direction Direction) (Port, error) {
	for _, p := range b.ports {
		if p.Direction == direction {
			return p, nil
		}
	}
	return Port{}, pkg.ErrNotPresent
}

// Open opens portID. A bypass port already holding an open handle
// returns [pkg.ErrBusy]; a mixer-backed port reuses the first inactive
// mixer slot, returning [pkg.ErrNoMemory] when every slot is already
// assigned to another open handle.
func (b *MixedBackend) Open(portID int, cfg StreamConfig) (*Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var port *Port
	for i := range b.ports {
		if b.ports[i].ID == portID {
			port = &b.ports[i]
			break
		}
	}
	if port == nil {
		return nil, pkg.ErrInvalidParameter
	}

	if port.MixerSlot == SlotBypass {
		if _, busy := b.bypassed[portID]; busy {
			return nil, pkg.ErrBusy
		}
		h := &Handle{port: *port, cfg: cfg, direction: port.Direction, slot: SlotBypass}
		b.bypassed[portID] = h
		return h, nil
	}

	slot, status := b.mix.OpenSlot()
	if status != pkg.StatusOK {
		return nil, status.Err()
	}
	if status := b.mix.SetVolume(slot, centibelsToQ16(cfg.GainCentibels)); status != pkg.StatusOK {
		b.mix.CloseSlot(slot)
		return nil, status.Err()
	}

	return &Handle{port: *port, cfg: cfg, direction: port.Direction, slot: slot}, nil
}

// Close closes h. Mixer-backed handles deactivate their slot; bypass
// handles free their port for reopening.
func (b *MixedBackend) Close(h *Handle) error {
	if h == nil {
		return pkg.ErrInvalidParameter
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if h.closed {
		return pkg.ErrDestroyed
	}
	h.closed = true

	if h.slot == SlotBypass {
		delete(b.bypassed, h.port.ID)
		return nil
	}
	if status := b.mix.CloseSlot(h.slot); status != pkg.StatusOK {
		return status.Err()
	}
	return nil
}

// Write pushes data to h. A direction mismatch (writing to an input
// port) fails with not-supported; an unopened handle fails with
// invalid-parameter.
func (b *MixedBackend) Write(ctx context.Context, h *Handle, data []int16) (int, error) {
	if h == nil || h.closed {
		return 0, pkg.ErrInvalidParameter
	}
	if h.direction != DirectionOut {
		return 0, pkg.ErrNotSupported
	}

	if h.slot == SlotBypass {
		if b.hwWrite != nil {
			b.hwWrite(data)
		}
		return len(data), nil
	}
	return b.mix.Write(h.slot, data), nil
}

// Read is not supported for output-only mixed backends; an input path
// would pull from a capture ring not modeled here.
func (b *MixedBackend) Read(ctx context.Context, h *Handle, buf []int16) (int, error) {
	if h == nil || h.closed {
		return 0, pkg.ErrInvalidParameter
	}
	return 0, pkg.ErrNotSupported
}

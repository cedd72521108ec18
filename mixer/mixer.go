package mixer

import (
	"sync"
	"time"

	"github.com/ardnew/emberhal/osal"
	"github.com/ardnew/emberhal/pkg"
	"github.com/ardnew/emberhal/pkg/prof"
)

// profMutexFraction is the mutex-contention sampling rate enabled for
// the lifetime of the mixer's real-time loop, the one goroutine in
// this module where lock hold time directly determines whether a
// period deadline is met.
const profMutexFraction = 4

// HWWrite is called with one full period of mixed, clipped samples
// whenever at least one slot was active during the period.
type HWWrite func([]int16)

// Config fixes the mixer's sample geometry. All slots share it, since
// the ring capacity formula (2 * PeriodFrames * Channels) assumes a
// single rate/channel-count/period across the mixer.
type Config struct {
	SampleRate   int
	Channels     int
	PeriodFrames int
	MaxSlots     int
}

// Mixer is the single dedicated real-time pull-mix thread described by
// the mini-mixer component design: it wakes once per period (or when a
// producer signals new data), mixes every active slot, clips, and hands
// the result to a hardware-write callback.
type Mixer struct {
	mu      sync.Mutex
	cfg     Config
	slots   []*Slot
	sem     *osal.Semaphore
	hwWrite HWWrite

	accum  []int32
	output []int16

	running bool
	thread  *osal.Thread
	stopped chan struct{}
}

// New creates a mixer with cfg.MaxSlots slots, all initially active at
// unity volume, and one dedicated semaphore producers Give after
// writes.
func New(cfg Config, hwWrite HWWrite) *Mixer {
	ringCapacity := 2 * cfg.PeriodFrames * cfg.Channels
	slots := make([]*Slot, cfg.MaxSlots)
	for i := range slots {
		slots[i] = newSlot(ringCapacity)
	}

	return &Mixer{
		cfg:     cfg,
		slots:   slots,
		sem:     osal.NewSemaphore(0, 1),
		hwWrite: hwWrite,
		accum:   make([]int32, cfg.PeriodFrames*cfg.Channels),
		output:  make([]int16, cfg.PeriodFrames*cfg.Channels),
	}
}

// periodMs is the wall-clock duration of one period, used as the
// semaphore wait timeout so the mixer also runs when producers are
// silent.
func (m *Mixer) periodMs() int64 {
	if m.cfg.SampleRate == 0 {
		return 10
	}
	ms := int64(m.cfg.PeriodFrames) * 1000 / int64(m.cfg.SampleRate)
	if ms < 1 {
		ms = 1
	}
	return ms
}

// Start spawns the mixer thread.
func (m *Mixer) Start() pkg.Status {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return pkg.StatusError
	}
	m.running = true
	m.stopped = make(chan struct{})
	m.mu.Unlock()

	prof.SetMutexProfileFraction(profMutexFraction)

	m.thread = osal.NewThread("mixer", func(any) {
		m.loop()
	}, nil, 30)

	return pkg.StatusOK
}

// Stop clears the running flag, wakes the thread, and joins it with a
// bounded timeout. No callbacks fire after Stop returns.
func (m *Mixer) Stop(timeoutMs int64) pkg.Status {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return pkg.StatusError
	}
	m.running = false
	m.mu.Unlock()

	m.sem.Give()
	status := m.thread.Join(timeoutMs)
	prof.SetMutexProfileFraction(0)
	return status
}

// Slot returns the slot at index, or nil if out of range.
func (m *Mixer) Slot(index int) *Slot {
	if index < 0 || index >= len(m.slots) {
		return nil
	}
	return m.slots[index]
}

// SetActive toggles whether a slot participates in the mix.
func (m *Mixer) SetActive(index int, active bool) pkg.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.slotLocked(index)
	if s == nil {
		return pkg.StatusInvalidParameter
	}
	s.active = active
	return pkg.StatusOK
}

// SetVolume sets a slot's Q16 volume.
func (m *Mixer) SetVolume(index int, volume uint32) pkg.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.slotLocked(index)
	if s == nil {
		return pkg.StatusInvalidParameter
	}
	s.volume = volume
	return pkg.StatusOK
}

// OpenSlot scans the slot table for the first inactive slot, resets
// its ring position, underrun count, and volume to unity, marks it
// active, and returns its index. It returns [pkg.StatusNoMemory] when
// every slot is already active, mirroring the original
// eai_audio_mixer_slot_open's ENOMEM exhaustion path — callers must
// not hand out a fresh index unconditionally.
func (m *Mixer) OpenSlot() (int, pkg.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.slots {
		if s.active {
			continue
		}
		s.active = true
		s.write = 0
		s.read = 0
		s.underruns = 0
		s.volume = VolumeUnity
		return i, pkg.StatusOK
	}
	return -1, pkg.StatusNoMemory
}

// CloseSlot deactivates a slot and resets its ring position, mirroring
// eai_audio_mixer_slot_close, so a later OpenSlot can reuse the index
// without inheriting a stale read/write offset.
func (m *Mixer) CloseSlot(index int) pkg.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.slotLocked(index)
	if s == nil {
		return pkg.StatusInvalidParameter
	}
	s.active = false
	s.write = 0
	s.read = 0
	return pkg.StatusOK
}

func (m *Mixer) slotLocked(index int) *Slot {
	if index < 0 || index >= len(m.slots) {
		return nil
	}
	return m.slots[index]
}

// Write is the producer contract: it locks the mutex, computes free
// space in samples, writes min(len(data), available) rounded down to
// whole frames, advances the write counter, unlocks, and gives the
// semaphore. It returns the number of frames actually written.
func (m *Mixer) Write(index int, data []int16) int {
	m.mu.Lock()
	s := m.slotLocked(index)
	if s == nil {
		m.mu.Unlock()
		return 0
	}

	channels := m.cfg.Channels
	if channels < 1 {
		channels = 1
	}

	requestedFrames := len(data) / channels
	availableFrames := s.free() / channels
	frames := requestedFrames
	if frames > availableFrames {
		frames = availableFrames
	}
	samples := frames * channels

	for i := 0; i < samples; i++ {
		s.ring[int(s.write+uint64(i))%s.capacity] = data[i]
	}
	s.write += uint64(samples)
	m.mu.Unlock()

	m.sem.Give()
	return frames
}

// loop is the mixer's five-step real-time schedule.
func (m *Mixer) loop() {
	period := m.periodMs()
	periodSamples := m.cfg.PeriodFrames * m.cfg.Channels

	for {
		m.sem.Take(period)

		m.mu.Lock()
		if !m.running {
			m.mu.Unlock()
			close(m.stopped)
			return
		}

		for i := range m.accum {
			m.accum[i] = 0
		}

		anyActive := false
		for _, s := range m.slots {
			if !s.active {
				continue
			}
			anyActive = true
			m.drainSlot(s, periodSamples)
		}

		for i, acc := range m.accum {
			m.output[i] = clipInt16(acc)
		}
		m.mu.Unlock()

		if anyActive && m.hwWrite != nil {
			m.hwWrite(m.output)
		}
	}
}

// drainSlot pulls one period of samples from s, scales them by the
// slot's volume and adds them straight into m.accum, treating missing
// samples as silence and counting an underrun if fewer than a full
// period is available.
func (m *Mixer) drainSlot(s *Slot, periodSamples int) {
	available := s.count()
	n := available
	if n > periodSamples {
		n = periodSamples
	}
	if n < periodSamples {
		s.underruns++
	}

	for i := 0; i < periodSamples; i++ {
		var sample int16
		if i < n {
			sample = s.ring[int(s.read+uint64(i))%s.capacity]
		}
		scaled := int32(sample) * int32(s.volume) >> 16
		m.accum[i] += scaled
	}
	s.read += uint64(n)
}

func clipInt16(acc int32) int16 {
	switch {
	case acc > 32767:
		return 32767
	case acc < -32768:
		return -32768
	default:
		return int16(acc)
	}
}

// waitStopped blocks until the mixer's loop goroutine has fully
// exited, for tests that need to observe the post-Stop "no callbacks
// fire" guarantee deterministically.
func (m *Mixer) waitStopped(timeout time.Duration) bool {
	select {
	case <-m.stopped:
		return true
	case <-time.After(timeout):
		return false
	}
}

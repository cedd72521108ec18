package mixer

import (
	"sync"
	"testing"
	"time"

	"github.com/ardnew/emberhal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMixer(t *testing.T) (*Mixer, func() [][]int16, func()) {
	t.Helper()

	var mu sync.Mutex
	var captured [][]int16

	m := New(Config{SampleRate: 16000, Channels: 1, PeriodFrames: 64, MaxSlots: 4}, func(buf []int16) {
		mu.Lock()
		cp := make([]int16, len(buf))
		copy(cp, buf)
		captured = append(captured, cp)
		mu.Unlock()
	})

	require.Equal(t, pkg.StatusOK, m.Start())

	get := func() [][]int16 {
		mu.Lock()
		defer mu.Unlock()
		out := make([][]int16, len(captured))
		copy(out, captured)
		return out
	}

	cleanup := func() {
		m.Stop(time.Second.Milliseconds())
	}
	return m, get, cleanup
}

func TestMixer_MixesTwoConstantStreams(t *testing.T) {
	m, get, cleanup := newTestMixer(t)
	defer cleanup()

	a := make([]int16, 64)
	b := make([]int16, 64)
	for i := range a {
		a[i] = 1000
		b[i] = 2000
	}

	m.Write(0, a)
	m.Write(1, b)

	assert.Eventually(t, func() bool {
		frames := get()
		return len(frames) > 0
	}, time.Second, 2*time.Millisecond)

	frames := get()
	require.NotEmpty(t, frames)
	for _, s := range frames[0] {
		assert.EqualValues(t, 3000, s)
	}
	assert.EqualValues(t, 0, m.Slot(0).Underruns())
	assert.EqualValues(t, 0, m.Slot(1).Underruns())
}

func TestMixer_HardClipsPositive(t *testing.T) {
	m, get, cleanup := newTestMixer(t)
	defer cleanup()

	a := make([]int16, 64)
	b := make([]int16, 64)
	for i := range a {
		a[i] = 20000
		b[i] = 20000
	}
	m.Write(0, a)
	m.Write(1, b)

	assert.Eventually(t, func() bool { return len(get()) > 0 }, time.Second, 2*time.Millisecond)
	for _, s := range get()[0] {
		assert.EqualValues(t, 32767, s)
	}
}

func TestMixer_HardClipsNegative(t *testing.T) {
	m, get, cleanup := newTestMixer(t)
	defer cleanup()

	a := make([]int16, 64)
	b := make([]int16, 64)
	for i := range a {
		a[i] = -20000
		b[i] = -20000
	}
	m.Write(0, a)
	m.Write(1, b)

	assert.Eventually(t, func() bool { return len(get()) > 0 }, time.Second, 2*time.Millisecond)
	for _, s := range get()[0] {
		assert.EqualValues(t, -32768, s)
	}
}

func TestMixer_WriteShortWriteOnFull(t *testing.T) {
	m := New(Config{SampleRate: 16000, Channels: 1, PeriodFrames: 64, MaxSlots: 1}, nil)
	// Ring capacity is 2*64*1 = 128 samples; request more than that.
	data := make([]int16, 200)
	n := m.Write(0, data)
	assert.Equal(t, 128, n)
}

func TestMixer_UnderrunCountedOnShortData(t *testing.T) {
	m, get, cleanup := newTestMixer(t)
	defer cleanup()

	// Write fewer than one period's worth of frames.
	m.Write(0, make([]int16, 10))

	assert.Eventually(t, func() bool { return len(get()) > 0 }, time.Second, 2*time.Millisecond)
	assert.GreaterOrEqual(t, m.Slot(0).Underruns(), uint64(1))
}

func TestMixer_StopPreventsFurtherCallbacks(t *testing.T) {
	m, get, _ := newTestMixer(t)
	require.Equal(t, pkg.StatusOK, m.Stop(time.Second.Milliseconds()))

	before := len(get())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, len(get()))
}

func TestMixer_InactiveSlotSkipped(t *testing.T) {
	m, get, cleanup := newTestMixer(t)
	defer cleanup()

	require.Equal(t, pkg.StatusOK, m.SetActive(0, false))
	m.Write(0, make([]int16, 64))

	time.Sleep(30 * time.Millisecond)
	frames := get()
	// Slot 0 is inactive, so its written samples are never drained.
	// Slots 1-3 default active with no data; they still count as
	// active, so each period is mixed as silence (with underruns) and
	// the callback keeps firing.
	assert.NotNil(t, frames)
	assert.EqualValues(t, 0, m.Slot(0).ReadCount())
}

func TestMixer_OpenSlotReusesInactiveSlotAndReportsExhaustion(t *testing.T) {
	m := New(Config{SampleRate: 16000, Channels: 1, PeriodFrames: 64, MaxSlots: 2}, nil)
	for i := 0; i < 2; i++ {
		m.SetActive(i, false)
	}

	s0, status := m.OpenSlot()
	require.Equal(t, pkg.StatusOK, status)
	s1, status := m.OpenSlot()
	require.Equal(t, pkg.StatusOK, status)
	assert.NotEqual(t, s0, s1)

	_, status = m.OpenSlot()
	assert.Equal(t, pkg.StatusNoMemory, status, "every slot is active")

	require.Equal(t, pkg.StatusOK, m.CloseSlot(s0))
	reused, status := m.OpenSlot()
	require.Equal(t, pkg.StatusOK, status)
	assert.Equal(t, s0, reused, "closing a slot frees it for the next OpenSlot")
}

func TestMixer_CloseSlotResetsRingPosition(t *testing.T) {
	m := New(Config{SampleRate: 16000, Channels: 1, PeriodFrames: 64, MaxSlots: 1}, nil)
	m.Write(0, make([]int16, 40))
	require.Equal(t, pkg.StatusOK, m.CloseSlot(0))
	assert.EqualValues(t, 0, m.Slot(0).WriteCount())
	assert.EqualValues(t, 0, m.Slot(0).ReadCount())
	assert.False(t, m.Slot(0).Active())
}

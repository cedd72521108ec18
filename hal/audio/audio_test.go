package audio_test

import (
	"context"
	"testing"

	"github.com/ardnew/emberhal/hal/audio"
	"github.com/ardnew/emberhal/mixer"
	"github.com/ardnew/emberhal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPorts() []audio.Port {
	return []audio.Port{
		{ID: 0, Name: "speaker", Direction: audio.DirectionOut, MixerSlot: 0},
		{ID: 1, Name: "headset", Direction: audio.DirectionOut, MixerSlot: 0},
		{ID: 2, Name: "debug-uart", Direction: audio.DirectionOut, MixerSlot: audio.SlotBypass},
	}
}

func newTestBackend(t *testing.T) (*audio.MixedBackend, func() [][]int16) {
	t.Helper()
	var mu chanCapture
	b := audio.NewMixedBackend(testPorts(), mixer.Config{
		SampleRate:   48000,
		Channels:     1,
		PeriodFrames: 64,
		MaxSlots:     4,
	}, mu.capture)
	require.NoError(t, b.Init(context.Background()))
	t.Cleanup(func() { _ = b.Deinit() })
	return b, mu.snapshot
}

type chanCapture struct {
	calls [][]int16
}

func (c *chanCapture) capture(data []int16) {
	cp := append([]int16(nil), data...)
	c.calls = append(c.calls, cp)
}

func (c *chanCapture) snapshot() [][]int16 {
	return c.calls
}

func TestMixedBackend_OpenSecondHandleOnMixerPortAllocatesNewSlot(t *testing.T) {
	b, _ := newTestBackend(t)

	h1, err := b.Open(0, audio.StreamConfig{SampleRate: 48000, PeriodFrames: 64})
	require.NoError(t, err)
	require.NotNil(t, h1)

	h2, err := b.Open(0, audio.StreamConfig{SampleRate: 48000, PeriodFrames: 64})
	require.NoError(t, err, "mixer-backed ports must not return busy on a second open")
	require.NotNil(t, h2)
}

func TestMixedBackend_OpenBypassPortTwiceIsBusy(t *testing.T) {
	b, _ := newTestBackend(t)

	h1, err := b.Open(2, audio.StreamConfig{})
	require.NoError(t, err)

	_, err = b.Open(2, audio.StreamConfig{})
	assert.ErrorIs(t, err, pkg.ErrBusy)

	require.NoError(t, b.Close(h1))
	_, err = b.Open(2, audio.StreamConfig{})
	assert.NoError(t, err, "closing frees the bypass port for reopening")
}

func TestMixedBackend_ReadAlwaysNotSupported(t *testing.T) {
	b, _ := newTestBackend(t)
	h, err := b.Open(2, audio.StreamConfig{})
	require.NoError(t, err)

	buf := make([]int16, 16)
	_, err = b.Read(context.Background(), h, buf)
	assert.ErrorIs(t, err, pkg.ErrNotSupported)
}

func TestMixedBackend_WriteDirectionMismatch(t *testing.T) {
	ports := []audio.Port{{ID: 0, Name: "mic", Direction: audio.DirectionIn, MixerSlot: audio.SlotBypass}}
	var mu chanCapture
	b := audio.NewMixedBackend(ports, mixer.Config{SampleRate: 48000, Channels: 1, PeriodFrames: 64, MaxSlots: 1}, mu.capture)
	require.NoError(t, b.Init(context.Background()))
	defer b.Deinit()

	h, err := b.Open(0, audio.StreamConfig{})
	require.NoError(t, err)

	_, err = b.Write(context.Background(), h, []int16{1, 2, 3})
	assert.ErrorIs(t, err, pkg.ErrNotSupported)
}

func TestMixedBackend_CloseIsIdempotentAndRejectsReuse(t *testing.T) {
	b, _ := newTestBackend(t)
	h, err := b.Open(2, audio.StreamConfig{})
	require.NoError(t, err)

	require.NoError(t, b.Close(h))
	err = b.Close(h)
	assert.ErrorIs(t, err, pkg.ErrDestroyed)
}

func TestMixedBackend_FindPortByDirection(t *testing.T) {
	b, _ := newTestBackend(t)
	p, err := b.FindPort(audio.DirectionOut)
	require.NoError(t, err)
	assert.Equal(t, 0, p.ID)

	_, err = b.FindPort(audio.DirectionIn)
	assert.ErrorIs(t, err, pkg.ErrNotPresent)
}

func TestMixedBackend_BypassWriteDrivesHWWriteDirectly(t *testing.T) {
	b, snapshot := newTestBackend(t)
	h, err := b.Open(2, audio.StreamConfig{})
	require.NoError(t, err)

	n, err := b.Write(context.Background(), h, []int16{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, snapshot(), []int16{10, 20, 30})
}

func TestMixedBackend_OpenExhaustsSlotsThenReusesAfterClose(t *testing.T) {
	ports := []audio.Port{{ID: 0, Name: "speaker", Direction: audio.DirectionOut, MixerSlot: 0}}
	var mu chanCapture
	b := audio.NewMixedBackend(ports, mixer.Config{
		SampleRate: 48000, Channels: 1, PeriodFrames: 64, MaxSlots: 2,
	}, mu.capture)
	require.NoError(t, b.Init(context.Background()))
	defer b.Deinit()

	h1, err := b.Open(0, audio.StreamConfig{})
	require.NoError(t, err)
	h2, err := b.Open(0, audio.StreamConfig{})
	require.NoError(t, err)

	_, err = b.Open(0, audio.StreamConfig{})
	assert.ErrorIs(t, err, pkg.ErrNoMemory, "every mixer slot is in use")

	require.NoError(t, b.Close(h1))
	h3, err := b.Open(0, audio.StreamConfig{})
	require.NoError(t, err, "closing h1 must free its slot for reuse")
	require.NotNil(t, h3)

	require.NoError(t, b.Close(h2))
	require.NoError(t, b.Close(h3))
}

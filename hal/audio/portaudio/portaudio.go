// Package portaudio is the audio HAL's real backend, driving host audio
// output through github.com/gordonklaus/portaudio. It supplies the
// HWWrite sink a [mixer.Mixer] calls once per period; port enumeration
// and mixer-slot multiplexing itself is unchanged from
// [github.com/ardnew/emberhal/hal/audio.MixedBackend].
//
//go:build portaudio

package portaudio

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Sink opens a single host output stream and exposes a
// [github.com/ardnew/emberhal/mixer.HWWrite]-compatible Write method
// that latches each mixed period for the portaudio callback thread to
// drain.
type Sink struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	opened bool
	last   []int16
}

// NewSink initializes the portaudio library and opens the default host
// output stream at sampleRate/channels, with a callback-driven buffer
// sized to periodFrames.
func NewSink(sampleRate float64, channels, periodFrames int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Sink{}
	stream, err := portaudio.OpenDefaultStream(0, channels, sampleRate, periodFrames, s.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	s.mu.Lock()
	s.stream = stream
	s.opened = true
	s.mu.Unlock()
	return s, nil
}

// callback runs on portaudio's own real-time thread; it never blocks on
// the mixer, only on this sink's short-held mutex.
func (s *Sink) callback(out []int16) {
	s.mu.Lock()
	n := copy(out, s.last)
	s.mu.Unlock()
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// Write satisfies [github.com/ardnew/emberhal/mixer.HWWrite]. Called on
// the mixer's own thread once per period; it just latches the latest
// buffer for the next portaudio callback to drain.
func (s *Sink) Write(data []int16) {
	s.mu.Lock()
	s.last = append(s.last[:0], data...)
	s.mu.Unlock()
}

// Close stops and closes the stream and terminates the portaudio
// library. Safe to call once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return nil
	}
	s.opened = false
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}

package osal

import (
	"sync"
	"time"

	"github.com/ardnew/emberhal/pkg"
)

// Timer is a one-shot or periodic callback fired from a dedicated
// timer-daemon goroutine — never the caller's own goroutine, matching
// the "never the caller's thread" contract.
type Timer struct {
	mu       sync.Mutex
	callback func(arg any)
	arg      any
	running  bool
	stopCh   chan struct{}
	gen      uint64
}

// NewTimer creates a disarmed timer with the given callback and user
// argument. The timer must be armed with [Timer.Start].
func NewTimer(callback func(arg any), arg any) *Timer {
	return &Timer{callback: callback, arg: arg}
}

// Start arms the timer, replacing any prior arming. If periodMs is 0
// the timer is one-shot, firing once after initialMs. Otherwise it
// fires first at initialMs and then every periodMs thereafter.
func (t *Timer) Start(initialMs, periodMs int64) pkg.Status {
	if t == nil {
		return pkg.StatusInvalidParameter
	}

	t.mu.Lock()
	if t.running {
		close(t.stopCh)
	}
	t.gen++
	gen := t.gen
	stop := make(chan struct{})
	t.stopCh = stop
	t.running = true
	t.mu.Unlock()

	go t.daemon(gen, stop, initialMs, periodMs)
	return pkg.StatusOK
}

// Stop disarms the timer. Idempotent: stopping an already-stopped timer
// is a no-op returning OK.
func (t *Timer) Stop() pkg.Status {
	if t == nil {
		return pkg.StatusInvalidParameter
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		close(t.stopCh)
		t.running = false
	}
	return pkg.StatusOK
}

// IsRunning reports the most recently observed arm/disarm state. The
// report may lag an in-flight Start/Stop by up to one daemon service
// interval.
func (t *Timer) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// daemon runs the fire loop for one generation of arming. A new Start
// call bumps the generation and closes the previous stop channel, so a
// stale daemon goroutine exits on its next tick without firing.
func (t *Timer) daemon(gen uint64, stop chan struct{}, initialMs, periodMs int64) {
	wait := time.Duration(initialMs) * time.Millisecond
	for {
		timer := time.NewTimer(wait)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		t.mu.Lock()
		current := t.gen == gen
		t.mu.Unlock()
		if !current {
			return
		}

		t.callback(t.arg)

		if periodMs == 0 {
			t.mu.Lock()
			if t.gen == gen {
				t.running = false
			}
			t.mu.Unlock()
			return
		}
		wait = time.Duration(periodMs) * time.Millisecond
	}
}

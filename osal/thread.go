package osal

import (
	"runtime"
	"time"

	"github.com/ardnew/emberhal/pkg"
)

// MinPriority and MaxPriority bound a [Thread]'s priority. 0 is
// reserved for the idle task, matching the backend's native range
// reservation described by the contract.
const (
	MinPriority = 0
	MaxPriority = 31
)

// Thread is a joinable schedulable unit. A native stack allocation
// (stackBuf/stackSize in the original contract) has no meaning for a
// goroutine, so [NewThread] takes no stack parameters.
type Thread struct {
	name     string
	priority int
	done     chan struct{}
}

// NewThread creates and immediately starts a thread running entry(arg).
// priority is clamped into [MinPriority, MaxPriority].
func NewThread(name string, entry func(arg any), arg any, priority int) *Thread {
	if priority < MinPriority {
		priority = MinPriority
	}
	if priority > MaxPriority {
		priority = MaxPriority
	}

	t := &Thread{
		name:     name,
		priority: priority,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		entry(arg)
	}()

	pkg.LogDebug(pkg.ComponentOSAL, "thread started", "name", name, "priority", priority)
	return t
}

// Name returns the thread's name.
func (t *Thread) Name() string {
	return t.name
}

// Priority returns the thread's priority.
func (t *Thread) Priority() int {
	return t.priority
}

// Join blocks until entry returns or timeoutMs elapses. A successful
// join may be called more than once; every call after entry returns
// sees the same OK result.
func (t *Thread) Join(timeoutMs int64) pkg.Status {
	if t == nil {
		return pkg.StatusInvalidParameter
	}

	if timeoutMs == Forever {
		<-t.done
		return pkg.StatusOK
	}
	if timeoutMs == NoWait {
		select {
		case <-t.done:
			return pkg.StatusOK
		default:
			return pkg.StatusTimeout
		}
	}

	select {
	case <-t.done:
		return pkg.StatusOK
	case <-time.After(time.Duration(timeoutMs) * time.Millisecond):
		return pkg.StatusTimeout
	}
}

// Sleep suspends the calling goroutine for approximately ms
// milliseconds.
func Sleep(ms int64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Yield voluntarily reschedules the calling goroutine.
func Yield() {
	runtime.Gosched()
}

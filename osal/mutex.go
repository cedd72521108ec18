package osal

import (
	"sync"
	"time"

	"github.com/ardnew/emberhal/pkg"
)

// Mutex is a recursive lock: the owning thread may re-acquire it
// without deadlocking. Ownership is tracked by goroutine ID proxy — a
// caller-supplied token, since Go has no public goroutine identity. A
// Mutex must be created with [NewMutex] and is safe for concurrent use.
type Mutex struct {
	mu        sync.Mutex
	cond      *sync.Cond
	owner     int64
	hasOwner  bool
	depth     int
	destroyed bool
}

// NewMutex creates an unlocked recursive mutex.
func NewMutex() *Mutex {
	m := &Mutex{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Lock acquires the mutex for the given owner token, blocking up to
// timeoutMs. A recursive lock by the same owner always succeeds
// immediately regardless of timeout. Pass [Forever] to block
// indefinitely or [NoWait] to fail immediately if unavailable.
func (m *Mutex) Lock(owner int64, timeoutMs int64) pkg.Status {
	if m == nil {
		return pkg.StatusInvalidParameter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed {
		return pkg.StatusInvalidParameter
	}

	if m.hasOwner && m.owner == owner {
		m.depth++
		return pkg.StatusOK
	}

	deadline := deadlineFor(timeoutMs)
	for m.hasOwner {
		if timeoutMs == NoWait {
			return pkg.StatusTimeout
		}
		if timeoutMs == Forever {
			m.cond.Wait()
			continue
		}
		if !waitUntil(m.cond, deadline) {
			return pkg.StatusTimeout
		}
		if m.destroyed {
			return pkg.StatusInvalidParameter
		}
	}

	m.owner = owner
	m.hasOwner = true
	m.depth = 1
	return pkg.StatusOK
}

// Unlock releases one level of recursion. The depth reaches zero, and
// the mutex becomes available to other owners, only after as many
// Unlock calls as matching Lock calls.
func (m *Mutex) Unlock(owner int64) pkg.Status {
	if m == nil {
		return pkg.StatusInvalidParameter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed {
		return pkg.StatusInvalidParameter
	}
	if !m.hasOwner || m.owner != owner {
		return pkg.StatusError
	}

	m.depth--
	if m.depth == 0 {
		m.hasOwner = false
		m.cond.Broadcast()
	}
	return pkg.StatusOK
}

// Destroy marks the mutex unusable. Behavior is undefined if a holder
// still owns the lock when Destroy is called.
func (m *Mutex) Destroy() pkg.Status {
	if m == nil {
		return pkg.StatusInvalidParameter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return pkg.StatusInvalidParameter
	}
	m.destroyed = true
	m.cond.Broadcast()
	return pkg.StatusOK
}

// deadlineFor converts a timeout in milliseconds to an absolute wall
// time, honoring the [NoWait]/[Forever] sentinels.
func deadlineFor(timeoutMs int64) time.Time {
	switch timeoutMs {
	case Forever:
		return time.Time{}
	default:
		return time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}
}

// waitUntil blocks on cond until woken or the deadline passes, returning
// false on timeout. sync.Cond has no native timed wait, so a helper
// goroutine nudges the condition variable at the deadline.
func waitUntil(cond *sync.Cond, deadline time.Time) bool {
	if deadline.IsZero() {
		cond.Wait()
		return true
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}

	timedOut := make(chan struct{})
	timer := time.AfterFunc(remaining, func() {
		close(timedOut)
		cond.L.Lock()
		cond.Broadcast()
		cond.L.Unlock()
	})
	defer timer.Stop()

	cond.Wait()

	select {
	case <-timedOut:
		return false
	default:
		return true
	}
}

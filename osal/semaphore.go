package osal

import (
	"sync"

	"github.com/ardnew/emberhal/pkg"
)

// Semaphore is a counting semaphore with a fixed upper limit. Give
// never raises the count above the limit — an excess give is silently
// dropped, a deliberate simplification that lets producers call Give
// without checking the return value.
type Semaphore struct {
	mu        sync.Mutex
	cond      *sync.Cond
	value     int
	limit     int
	destroyed bool
}

// NewSemaphore creates a semaphore with the given initial count and
// limit. initial must be in [0, limit] and limit must be >= 1;
// violations clamp initial into range rather than failing, since a
// semaphore has no constructor error channel in this contract.
func NewSemaphore(initial, limit int) *Semaphore {
	if limit < 1 {
		limit = 1
	}
	if initial < 0 {
		initial = 0
	}
	if initial > limit {
		initial = limit
	}
	s := &Semaphore{value: initial, limit: limit}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Give increments the count, capped at the semaphore's limit. Giving at
// the limit is a no-op that still returns OK.
func (s *Semaphore) Give() pkg.Status {
	if s == nil {
		return pkg.StatusInvalidParameter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return pkg.StatusInvalidParameter
	}
	if s.value < s.limit {
		s.value++
		s.cond.Signal()
	}
	return pkg.StatusOK
}

// Take decrements the count, blocking up to timeoutMs if it is
// currently zero.
func (s *Semaphore) Take(timeoutMs int64) pkg.Status {
	if s == nil {
		return pkg.StatusInvalidParameter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return pkg.StatusInvalidParameter
	}

	deadline := deadlineFor(timeoutMs)
	for s.value == 0 {
		if timeoutMs == NoWait {
			return pkg.StatusTimeout
		}
		if !waitUntil(s.cond, deadline) {
			return pkg.StatusTimeout
		}
		if s.destroyed {
			return pkg.StatusInvalidParameter
		}
	}
	s.value--
	return pkg.StatusOK
}

// Value returns the current count. Intended for diagnostics and tests,
// not for coordinating producers/consumers (check-then-act on it races
// with concurrent Take/Give).
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Destroy marks the semaphore unusable and wakes any blocked takers.
func (s *Semaphore) Destroy() pkg.Status {
	if s == nil {
		return pkg.StatusInvalidParameter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return pkg.StatusInvalidParameter
	}
	s.destroyed = true
	s.cond.Broadcast()
	return pkg.StatusOK
}

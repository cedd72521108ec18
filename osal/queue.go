package osal

import (
	"sync"

	"github.com/ardnew/emberhal/pkg"
)

// Queue is a fixed-capacity FIFO of fixed-size messages. The spec's
// "(item_size, capacity, caller_storage)" constructor collapses onto a
// Go generic: the element type supplies item_size, and capacity bounds
// a ring-backed slice rather than caller-supplied storage.
type Queue[T any] struct {
	mu        sync.Mutex
	notEmpty  *sync.Cond
	notFull   *sync.Cond
	items     []T
	capacity  int
	head      int
	count     int
	destroyed bool
}

// NewQueue creates a FIFO queue with the given fixed capacity. Capacity
// below 1 is clamped to 1.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	q := &Queue[T]{
		items:    make([]T, capacity),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Send copies msg into the queue, blocking up to timeoutMs if full.
func (q *Queue[T]) Send(msg T, timeoutMs int64) pkg.Status {
	if q == nil {
		return pkg.StatusInvalidParameter
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed {
		return pkg.StatusInvalidParameter
	}

	deadline := deadlineFor(timeoutMs)
	for q.count == q.capacity {
		if timeoutMs == NoWait {
			return pkg.StatusTimeout
		}
		if !waitUntil(q.notFull, deadline) {
			return pkg.StatusTimeout
		}
		if q.destroyed {
			return pkg.StatusInvalidParameter
		}
	}

	tail := (q.head + q.count) % q.capacity
	q.items[tail] = msg
	q.count++
	q.notEmpty.Signal()
	return pkg.StatusOK
}

// Recv pops the oldest message into *out, blocking up to timeoutMs if
// empty.
func (q *Queue[T]) Recv(out *T, timeoutMs int64) pkg.Status {
	if q == nil || out == nil {
		return pkg.StatusInvalidParameter
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed {
		return pkg.StatusInvalidParameter
	}

	deadline := deadlineFor(timeoutMs)
	for q.count == 0 {
		if timeoutMs == NoWait {
			return pkg.StatusTimeout
		}
		if !waitUntil(q.notEmpty, deadline) {
			return pkg.StatusTimeout
		}
		if q.destroyed {
			return pkg.StatusInvalidParameter
		}
	}

	*out = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head = (q.head + 1) % q.capacity
	q.count--
	q.notFull.Signal()
	return pkg.StatusOK
}

// Count returns the current number of enqueued messages.
func (q *Queue[T]) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Capacity returns the queue's fixed capacity.
func (q *Queue[T]) Capacity() int {
	return q.capacity
}

// Destroy marks the queue unusable and wakes any blocked sender/receiver.
func (q *Queue[T]) Destroy() pkg.Status {
	if q == nil {
		return pkg.StatusInvalidParameter
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.destroyed {
		return pkg.StatusInvalidParameter
	}
	q.destroyed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
	return pkg.StatusOK
}

package workqueue

import (
	"github.com/ardnew/emberhal/osal"
	"github.com/ardnew/emberhal/pkg"
)

// Callback is the function signature a [Work] item invokes when it
// runs on its queue's worker goroutine.
type Callback func(arg any)

// workItem is the (callback, arg) tuple a [Queue]'s worker drains.
type workItem struct {
	callback Callback
	arg      any
}

// Work is a caller-allocated (callback, arg) pair with no
// success/failure channel: it executes exactly once per submission, on
// its target queue's worker goroutine, and may be resubmitted after the
// callback returns (or, per the reference contract, even before it
// returns — a resubmit-while-pending queues the item a second time).
type Work struct {
	item workItem
}

// NewWork stores callback and arg in a new work item.
func NewWork(callback Callback, arg any) *Work {
	return &Work{item: workItem{callback: callback, arg: arg}}
}

// Submit enqueues the work item onto the system queue. Non-blocking: if
// the queue is full it returns [pkg.StatusNoMemory] without waiting.
func (w *Work) Submit() pkg.Status {
	return w.SubmitTo(SystemQueue())
}

// SubmitTo enqueues the work item onto q.
func (w *Work) SubmitTo(q *Queue) pkg.Status {
	if w == nil || q == nil {
		return pkg.StatusInvalidParameter
	}
	return q.enqueue(w.item)
}

// DelayedWork is a [Work] item plus an internal one-shot timer. Submit
// arms the timer; on expiry the inner work item is enqueued onto the
// target queue recorded at submit time. Cancel disarms the timer
// before it fires; once the timer has fired, Cancel has no effect on
// the enqueued callback.
type DelayedWork struct {
	work   *Work
	timer  *osal.Timer
	target *Queue
}

// NewDelayedWork stores callback and arg and creates the backing timer.
func NewDelayedWork(callback Callback, arg any) *DelayedWork {
	dw := &DelayedWork{work: NewWork(callback, arg)}
	dw.timer = osal.NewTimer(func(any) {
		q := dw.target
		if q == nil {
			q = SystemQueue()
		}
		dw.work.SubmitTo(q)
	}, nil)
	return dw
}

// Submit arms the timer to enqueue onto the system queue after delayMs.
func (dw *DelayedWork) Submit(delayMs int64) pkg.Status {
	return dw.SubmitTo(SystemQueue(), delayMs)
}

// SubmitTo arms the timer to enqueue onto q after delayMs.
func (dw *DelayedWork) SubmitTo(q *Queue, delayMs int64) pkg.Status {
	if dw == nil || q == nil {
		return pkg.StatusInvalidParameter
	}
	dw.target = q
	return dw.timer.Start(delayMs, 0)
}

// Cancel disarms the timer if it has not fired yet and returns the
// timer's Stop status. Once the timer has fired, Cancel returns
// [pkg.StatusError] whether the callback is still queued, running, or
// finished; it does not tell these cases apart and does not remove a
// queued callback, which still runs.
func (dw *DelayedWork) Cancel() pkg.Status {
	if dw == nil {
		return pkg.StatusInvalidParameter
	}
	if !dw.timer.IsRunning() {
		return pkg.StatusError
	}
	return dw.timer.Stop()
}

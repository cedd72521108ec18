package workqueue

import (
	"context"
	"time"

	"github.com/ardnew/emberhal/osal"
	"github.com/ardnew/emberhal/pkg"
	"golang.org/x/sync/errgroup"
)

// defaultCapacity bounds a queue's pending-item backlog before Submit
// starts returning [pkg.StatusNoMemory].
const defaultCapacity = 64

// Queue is a named worker goroutine plus a bounded FIFO of
// (callback, arg) tuples. The worker loops: receive an item (waiting
// up to 100 ms), invoke the callback, and return once the queue has
// been closed and a receive times out.
type Queue struct {
	name  string
	items *osal.Queue[workItem]
	group *errgroup.Group
	ctx   context.Context
	stop  context.CancelFunc
}

// NewQueue creates and starts a named work queue with the given
// backlog capacity.
func NewQueue(name string, capacity int) *Queue {
	if capacity < 1 {
		capacity = defaultCapacity
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	q := &Queue{
		name:  name,
		items: osal.NewQueue[workItem](capacity),
		group: group,
		ctx:   gctx,
		stop:  cancel,
	}

	group.Go(func() error {
		q.run()
		return nil
	})

	pkg.LogDebug(pkg.ComponentWorkQueue, "queue started", "name", name, "capacity", capacity)
	return q
}

// Name returns the queue's name.
func (q *Queue) Name() string {
	return q.name
}

func (q *Queue) run() {
	for {
		var item workItem
		status := q.items.Recv(&item, 100)
		if status == pkg.StatusOK {
			item.callback(item.arg)
			continue
		}
		select {
		case <-q.ctx.Done():
			return
		default:
		}
	}
}

// enqueue submits item without blocking, returning NoMemory if the
// backlog is full.
func (q *Queue) enqueue(item workItem) pkg.Status {
	if q.ctx.Err() != nil {
		return pkg.StatusInvalidParameter
	}
	status := q.items.Send(item, osal.NoWait)
	if status == pkg.StatusTimeout {
		return pkg.StatusNoMemory
	}
	return status
}

// Close stops accepting work and waits up to drainTimeoutMs for the
// worker goroutine to observe shutdown.
func (q *Queue) Close(drainTimeoutMs int64) pkg.Status {
	q.stop()
	done := make(chan struct{})
	go func() {
		q.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		return pkg.StatusOK
	case <-time.After(time.Duration(drainTimeoutMs) * time.Millisecond):
		return pkg.StatusTimeout
	}
}

package workqueue

import "sync"

var (
	systemOnce  sync.Once
	systemQueue *Queue
)

// SystemQueue returns the process-wide default work queue, created at
// first use.
func SystemQueue() *Queue {
	systemOnce.Do(func() {
		systemQueue = NewQueue("system", defaultCapacity)
	})
	return systemQueue
}

// Package workqueue implements the work queue runtime: a named worker
// goroutine draining a queue of (callback, arg) tuples, plus delayed
// work items backed by an internal one-shot [osal.Timer]. A process-wide
// system queue is created on first use, guarded by a sync.Once.
package workqueue

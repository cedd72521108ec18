package osal

import (
	"sync"

	"github.com/ardnew/emberhal/pkg"
)

// WaitMode selects how [EventGroup.Wait] evaluates a bit mask.
type WaitMode int

const (
	// WaitAny returns as soon as any requested bit is set.
	WaitAny WaitMode = iota
	// WaitAll returns only once every requested bit is set.
	WaitAll
)

// EventGroup is a 32-bit mask of user-defined condition bits. Set ors
// into the mask; Clear nands it out; Wait blocks until the requested
// bits satisfy the given mode. Bits are never auto-cleared on wake —
// callers that want edge-triggered semantics must Clear explicitly.
type EventGroup struct {
	mu   sync.Mutex
	cond *sync.Cond
	mask uint32
}

// NewEventGroup creates an event group with all bits initially clear.
func NewEventGroup() *EventGroup {
	g := &EventGroup{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Set ors bits into the mask and wakes any waiters.
func (g *EventGroup) Set(bits uint32) pkg.Status {
	if g == nil {
		return pkg.StatusInvalidParameter
	}
	g.mu.Lock()
	g.mask |= bits
	g.mu.Unlock()
	g.cond.Broadcast()
	return pkg.StatusOK
}

// Clear nands bits out of the mask.
func (g *EventGroup) Clear(bits uint32) pkg.Status {
	if g == nil {
		return pkg.StatusInvalidParameter
	}
	g.mu.Lock()
	g.mask &^= bits
	g.mu.Unlock()
	return pkg.StatusOK
}

// Wait blocks until bitsOfInterest satisfies mode, up to timeoutMs.
// actual receives exactly (observed_mask & bitsOfInterest) at wake
// time, whether or not the wait succeeded.
func (g *EventGroup) Wait(bitsOfInterest uint32, mode WaitMode, actual *uint32, timeoutMs int64) pkg.Status {
	if g == nil || actual == nil || bitsOfInterest == 0 {
		return pkg.StatusInvalidParameter
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	deadline := deadlineFor(timeoutMs)
	for !satisfied(g.mask, bitsOfInterest, mode) {
		if timeoutMs == NoWait {
			*actual = g.mask & bitsOfInterest
			return pkg.StatusTimeout
		}
		if !waitUntil(g.cond, deadline) {
			*actual = g.mask & bitsOfInterest
			return pkg.StatusTimeout
		}
	}

	*actual = g.mask & bitsOfInterest
	return pkg.StatusOK
}

func satisfied(mask, bitsOfInterest uint32, mode WaitMode) bool {
	observed := mask & bitsOfInterest
	switch mode {
	case WaitAll:
		return observed == bitsOfInterest
	default:
		return observed != 0
	}
}

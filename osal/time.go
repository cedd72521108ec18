package osal

import "math"

// Timeout sentinels accepted by every blocking OSAL operation, in
// milliseconds.
const (
	NoWait  = 0
	Forever = math.MaxInt64
)

// TickHz is the number of ticks per second used by [NowTicks] and
// [TicksToMs]. It has no bearing on [NowMs], which is already
// millisecond-resolution.
const TickHz = 1000

// NowTicks returns the current monotonic tick count. With TickHz ==
// 1000 this is numerically identical to [NowMs]; it exists as a
// distinct call so call sites that care about ticks rather than
// milliseconds read that way, and so [TicksToMs] has something to
// convert.
func NowTicks() int64 {
	return nowTicks()
}

// TicksToMs converts a tick count returned by [NowTicks] to
// milliseconds.
func TicksToMs(ticks int64) int64 {
	return ticks * 1000 / TickHz
}

// NowMs returns milliseconds since an arbitrary, monotonic epoch. It
// never decreases within a process lifetime.
func NowMs() int64 {
	return nowMs()
}

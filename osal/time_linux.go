//go:build linux

package osal

import "golang.org/x/sys/unix"

// nowMs reads CLOCK_MONOTONIC directly rather than going through
// time.Now(), so NowMs/NowTicks observe the same clock a real
// RTOS-backed build would read from the kernel.
func nowMs() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return nowMsFallback()
	}
	return ts.Sec*1000 + int64(ts.Nsec)/1_000_000
}

func nowTicks() int64 {
	return nowMs()
}

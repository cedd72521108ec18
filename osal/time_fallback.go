package osal

import "time"

var bootTime = time.Now()

// nowMsFallback is the portable monotonic clock used on platforms
// without a CLOCK_MONOTONIC syscall wrapper, and as the linux backend's
// fallback if clock_gettime ever fails.
func nowMsFallback() int64 {
	return time.Since(bootTime).Milliseconds()
}

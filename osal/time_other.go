//go:build !linux

package osal

func nowMs() int64 {
	return nowMsFallback()
}

func nowTicks() int64 {
	return nowMs()
}

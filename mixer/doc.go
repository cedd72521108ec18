// Package mixer implements the mini-mixer: a single real-time pull-mix
// goroutine that reads from per-stream ring buffers, scales by a Q16
// volume, accumulates, hard-clips to int16, and writes the result to a
// hardware-write callback. The loop follows the five-step schedule:
// wait on a semaphore for one period, lock, drain each active slot
// (counting underruns on short reads), mix and clip, unlock, and write.
package mixer

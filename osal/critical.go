package osal

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// CriticalKey is the opaque token [EnterCritical] returns and
// [ExitCritical] consumes. It carries the nesting depth reached by
// that entry so exit can assert strict LIFO pairing; callers must
// treat it as opaque.
type CriticalKey int

var (
	// criticalMu guards only criticalDepth/criticalOwner, never held
	// across a spin iteration.
	criticalMu    sync.Mutex
	criticalDepth int
	criticalOwner int64 = -1
)

// EnterCritical takes a process-wide gate standing in for preemption
// suspension (and, conceptually, a multi-core spinlock). It nests: a
// goroutine already holding the section may call it again without
// blocking, since re-entry is recognized by goroutine identity rather
// than contending on the gate a second time. A different goroutine
// calling in spins until the holder fully unwinds to depth zero.
func EnterCritical() CriticalKey {
	id := goroutineID()

	criticalMu.Lock()
	for criticalDepth > 0 && criticalOwner != id {
		criticalMu.Unlock()
		runtime.Gosched()
		criticalMu.Lock()
	}
	criticalOwner = id
	criticalDepth++
	depth := criticalDepth
	criticalMu.Unlock()

	return CriticalKey(depth)
}

// ExitCritical releases the section acquired by the matching
// EnterCritical call. key is asserted against the current depth; a
// mismatched key indicates unbalanced enter/exit calls.
func ExitCritical(key CriticalKey) {
	criticalMu.Lock()
	defer criticalMu.Unlock()

	if int(key) != criticalDepth {
		panic("osal: unbalanced critical section exit")
	}
	criticalDepth--
	if criticalDepth == 0 {
		criticalOwner = -1
	}
}

// goroutineID extracts the calling goroutine's numeric ID from its own
// stack trace header ("goroutine 123 [running]:"). The runtime does
// not export this, so parsing is the standard workaround; it's only
// needed here to distinguish same-goroutine re-entry from genuine
// cross-goroutine contention on the critical-section gate.
func goroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseInt(string(buf), 10, 64)
	return id
}

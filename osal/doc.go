// Package osal provides the operating-system abstraction primitives the
// rest of emberhal is built on: a recursive mutex, a counting semaphore,
// a fixed-capacity FIFO queue, a joinable thread, a one-shot/periodic
// timer, an event group, a nestable critical section, and monotonic
// time. Go's scheduler stands in as the single backend — there is no
// RTOS/POSIX/bare-metal build-tag family, since goroutines and channels
// already are the portable concurrency runtime a HAL would otherwise
// need to abstract over. The multi-backend dispatch pattern itself
// reappears one level up, in the hal/* packages.
//
// Every primitive follows the same failure model: operations return a
// [pkg.Status] rather than panicking on a caller error, and a null or
// already-destroyed handle always yields [pkg.StatusInvalidParameter].
// The one exception is [ExitCritical], which returns nothing and
// panics on an unbalanced exit.
package osal

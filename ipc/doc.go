// Package ipc implements the loopback endpoint IPC runtime: a registry
// of named endpoints that pairs two registrations sharing a name and
// delivers messages synchronously by invoking the peer's received
// callback on the sender's own goroutine. It is grounded in the same
// shape as the fifo-backed device/host HAL pairing: a table of named,
// paired communication endpoints behind a mutex, exposed through a
// narrow interface, with injection helpers for tests — there a device
// FIFO directory pairs with a host FIFO directory by shared path, here
// an [Endpoint] pairs with another by shared name.
package ipc

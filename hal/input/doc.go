// Package input implements the input HAL surface: module init/deinit,
// device enumeration, handle lifecycle, and an event data-plane that
// posts into an [github.com/ardnew/emberhal/osal.EventGroup] bit per
// device, matching the callback-context rule that callbacks MAY
// enqueue further work or post events. It follows the same four-part
// pattern as every other HAL surface (device/hal/hal.go's DeviceHAL
// is the teacher's analogue).
package input

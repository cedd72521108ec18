// Package display implements the display HAL surface: module
// init/deinit, layer enumeration, handle lifecycle, and a framebuffer
// commit data-plane with a vsync callback. It follows the same
// four-part pattern as every other HAL surface (device/hal/hal.go's
// DeviceHAL is the teacher's analogue: a narrow, context-aware
// interface implemented once per backend).
package display

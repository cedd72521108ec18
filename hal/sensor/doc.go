// Package sensor implements the sensor HAL surface: module
// init/deinit, device enumeration, and a single-reader session
// data-plane. Unlike mixer-backed audio, sensor sessions explicitly do
// not support multiplexing: opening a device that already has an
// active session returns busy. It follows the same four-part pattern
// as every other HAL surface (device/hal/hal.go's DeviceHAL is the
// teacher's analogue).
package sensor

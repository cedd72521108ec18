// Package audio implements the audio HAL surface: module init/deinit,
// port enumeration, stream handle lifecycle, and a mixer-backed
// data-plane. It follows the same four-part pattern as every other HAL
// surface (device/hal/hal.go's DeviceHAL is the teacher's analogue: a
// narrow, context-aware interface implemented once per backend).
// Opening a second stream on a port whose MixerSlot is not
// [SlotBypass] reuses a free mixer slot instead of returning busy —
// the one HAL surface the component design calls out as supporting
// handle multiplexing — and returns [pkg.ErrNoMemory] once every slot
// is in use.
package audio

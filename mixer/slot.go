package mixer

// VolumeUnity and VolumeMute are the Q16 fixed-point volume extremes:
// 0x10000 passes a sample through unchanged, 0 silences it.
const (
	VolumeUnity uint32 = 0x10000
	VolumeMute  uint32 = 0
)

// Slot is a per-stream ring buffer of samples plus the bookkeeping the
// mixer and its producer share: monotonically increasing write/read
// counters (never wrapped — only indexing into the ring is modular), a
// Q16 volume, an underrun counter, and an active flag. All fields are
// read and mutated under the owning [Mixer]'s mutex; Slot itself holds
// no lock.
type Slot struct {
	ring      []int16
	capacity  int
	write     uint64
	read      uint64
	volume    uint32
	underruns uint64
	active    bool
}

func newSlot(capacity int) *Slot {
	return &Slot{
		ring:     make([]int16, capacity),
		capacity: capacity,
		volume:   VolumeUnity,
		active:   true,
	}
}

// count returns the number of samples currently buffered.
func (s *Slot) count() int {
	return int(s.write - s.read)
}

// free returns the number of samples that can still be written.
func (s *Slot) free() int {
	return s.capacity - s.count()
}

// Underruns returns the number of periods this slot has served with
// less than one full period of data.
func (s *Slot) Underruns() uint64 {
	return s.underruns
}

// Volume returns the slot's current Q16 volume.
func (s *Slot) Volume() uint32 {
	return s.volume
}

// Active reports whether the slot participates in the mix.
func (s *Slot) Active() bool {
	return s.active
}

// WriteCount and ReadCount expose the raw monotonic counters, mainly
// for tests asserting the write >= read invariant.
func (s *Slot) WriteCount() uint64 { return s.write }
func (s *Slot) ReadCount() uint64  { return s.read }

package series

// Sample is one (tick, percentage) point.
type Sample struct {
	Tick    uint64  `json:"tick"`
	Percent float64 `json:"percent"`
}

// Ring is a fixed-capacity buffer of samples that overwrites the oldest entry
// once full. It is seeded with one sample at construction and is therefore
// never empty.
type Ring struct {
	buf  []Sample
	head int // next write position
	size int
}

// NewRing creates a ring holding at most capacity samples, seeded with seed.
func NewRing(capacity int, seed Sample) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	r := &Ring{buf: make([]Sample, capacity)}
	r.Push(seed)
	return r
}

// Push appends s, evicting the oldest sample when full.
func (r *Ring) Push(s Sample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// Len returns the number of stored samples.
func (r *Ring) Len() int {
	return r.size
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// At returns the i-th stored sample, oldest first.
func (r *Ring) At(i int) Sample {
	if i < 0 || i >= r.size {
		panic("series: ring index out of range")
	}
	start := (r.head - r.size + len(r.buf)) % len(r.buf)
	return r.buf[(start+i)%len(r.buf)]
}

// Last returns the most recent sample.
func (r *Ring) Last() Sample {
	return r.buf[(r.head-1+len(r.buf))%len(r.buf)]
}

// Samples returns a copy of the stored samples, oldest first.
func (r *Ring) Samples() []Sample {
	out := make([]Sample, r.size)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Package series holds the rolling (tick, percentage) history of one widget.
// A Store owns a single logical clock and any number of series that advance
// in lock-step: every append adds exactly one sample to every series, stamped
// with the same tick.
package series

import (
	"math"

	"emperror.dev/errors"
)

const (
	// FirstTick is the clock value at construction; the seed sample carries it.
	FirstTick uint64 = 1

	// WindowSpan is how many ticks before the current one stay visible.
	WindowSpan = 100

	// WindowWidth is the width of the rendered horizontal axis, in ticks.
	WindowWidth = WindowSpan + 1

	// MinCapacity keeps every tick of the render window in the store.
	MinCapacity = WindowWidth
)

// ErrReadingMismatch is returned when an append does not carry exactly one
// reading per tracked series.
var ErrReadingMismatch = errors.New("reading count does not match tracked series")

// Reading is one query result for a tracked sub-resource.
type Reading struct {
	Total   uint64
	Used    uint64
	Percent float64
}

// Series is the history of one tracked sub-resource. Only its Store mutates it.
type Series struct {
	label   string
	total   uint64
	used    uint64
	stale   bool
	samples *Ring
}

func (s *Series) Label() string { return s.label }

// Total is the most recent capacity in bytes.
func (s *Series) Total() uint64 { return s.total }

// Used is the most recent consumption in bytes.
func (s *Series) Used() uint64 { return s.used }

// Stale reports whether the latest query for this series failed.
func (s *Series) Stale() bool { return s.stale }

func (s *Series) Len() int { return s.samples.Len() }

// Last returns the most recent sample. It is always valid.
func (s *Series) Last() Sample { return s.samples.Last() }

func (s *Series) At(i int) Sample { return s.samples.At(i) }

// Samples returns a copy of the history, oldest first.
func (s *Series) Samples() []Sample { return s.samples.Samples() }

// Window is the horizontal axis range shown for the current tick.
type Window struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (w Window) Width() float64 {
	return w.Max - w.Min
}

// Contains reports whether tick lies inside the window.
func (w Window) Contains(tick uint64) bool {
	t := float64(tick)
	return t >= w.Min && t <= w.Max
}

// Store keeps lock-step series behind one clock.
type Store struct {
	tick   uint64
	series []*Series
}

// NewStore creates one series per label, each seeded with (FirstTick, 0).
// capacity is raised to MinCapacity if smaller.
func NewStore(capacity int, labels ...string) *Store {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}

	st := &Store{
		tick:   FirstTick,
		series: make([]*Series, len(labels)),
	}
	for i, l := range labels {
		st.series[i] = &Series{
			label:   l,
			samples: NewRing(capacity, Sample{Tick: FirstTick, Percent: 0}),
		}
	}
	return st
}

// Tick returns the current logical clock value.
func (st *Store) Tick() uint64 {
	return st.tick
}

// Len returns the number of tracked series.
func (st *Store) Len() int {
	return len(st.series)
}

// Series returns the i-th tracked series.
func (st *Store) Series(i int) *Series {
	return st.series[i]
}

// All returns the tracked series in construction order.
func (st *Store) All() []*Series {
	out := make([]*Series, len(st.series))
	copy(out, st.series)
	return out
}

// Append advances the clock by one and records one reading per series. It is
// all-or-nothing: a reading-count mismatch leaves the store untouched.
func (st *Store) Append(readings []Reading) error {
	if len(readings) != len(st.series) {
		return errors.WithDetails(ErrReadingMismatch, "want", len(st.series), "got", len(readings))
	}

	st.tick++
	for i, r := range readings {
		s := st.series[i]
		s.total = r.Total
		s.used = r.Used
		s.stale = false
		s.samples.Push(Sample{Tick: st.tick, Percent: ClampPercent(r.Percent)})
	}
	return nil
}

// MarkStale flags every series after a failed query. History, totals and the
// clock are left as they were.
func (st *Store) MarkStale() {
	for _, s := range st.series {
		s.stale = true
	}
}

// Window returns the trailing range [tick-WindowSpan, tick+1].
func (st *Store) Window() Window {
	now := float64(st.tick)
	return Window{Min: now - WindowSpan, Max: now + 1}
}

// ClampPercent maps v into [0,100]; NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

package schedule

import (
	"math/bits"
	"strconv"
	"strings"

	"emperror.dev/errors"
)

// MaxPerTick is the most updates one task may run in a single base tick.
const MaxPerTick = 100

// Ratio is an exact update cadence: one update every Num/Den host base ticks.
// A zero Ratio is invalid; use NewRatio or ParseRatio.
type Ratio struct {
	Num uint64
	Den uint64
}

// Every returns a Ratio of one update per n base ticks.
func Every(n uint64) Ratio {
	return Ratio{Num: n, Den: 1}
}

// NewRatio builds a reduced ratio. Both parts must be non-zero.
func NewRatio(num, den uint64) (Ratio, error) {
	if num == 0 || den == 0 {
		return Ratio{}, errors.Errorf("invalid ratio %d/%d: numerator and denominator must be positive", num, den)
	}
	g := gcd(num, den)
	return Ratio{Num: num / g, Den: den / g}, nil
}

// ParseRatio accepts "n" or "num/den".
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = "1"
	}

	num, err := strconv.ParseUint(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Ratio{}, errors.Wrapf(err, "parse ratio numerator %q", s)
	}
	den, err := strconv.ParseUint(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Ratio{}, errors.Wrapf(err, "parse ratio denominator %q", s)
	}

	return NewRatio(num, den)
}

// Valid reports whether both parts are non-zero.
func (r Ratio) Valid() bool {
	return r.Num != 0 && r.Den != 0
}

// TooFast reports whether r asks for more than MaxPerTick updates per base
// tick, that is Den > Num*MaxPerTick.
func (r Ratio) TooFast() bool {
	hi, lo := bits.Mul64(r.Num, MaxPerTick)
	return hi == 0 && r.Den > lo
}

func (r Ratio) String() string {
	if r.Den == 1 {
		return strconv.FormatUint(r.Num, 10)
	}
	return strconv.FormatUint(r.Num, 10) + "/" + strconv.FormatUint(r.Den, 10)
}

// Equal compares by cross-multiplication, so 2/4 equals 1/2.
func (r Ratio) Equal(o Ratio) bool {
	ah, al := bits.Mul64(r.Num, o.Den)
	bh, bl := bits.Mul64(o.Num, r.Den)
	return ah == bh && al == bl
}

// Less reports r < o using exact 128-bit cross products.
func (r Ratio) Less(o Ratio) bool {
	ah, al := bits.Mul64(r.Num, o.Den)
	bh, bl := bits.Mul64(o.Num, r.Den)
	if ah != bh {
		return ah < bh
	}
	return al < bl
}

// Fired returns how many updates are due after tick base ticks have elapsed:
// floor(tick * Den / Num). The product is computed in 128 bits so the result
// never drifts however long the session runs.
func (r Ratio) Fired(tick uint64) uint64 {
	if !r.Valid() {
		return 0
	}
	hi, lo := bits.Mul64(tick, r.Den)
	if hi >= r.Num {
		// quotient does not fit in 64 bits
		return ^uint64(0)
	}
	q, _ := bits.Div64(hi, lo, r.Num)
	return q
}

// Pending returns the number of updates that fall due on exactly this base
// tick. For intervals of one or more base ticks it is 0 or 1; faster
// intervals can fire several times per tick.
func (r Ratio) Pending(tick uint64) uint64 {
	if tick == 0 {
		return 0
	}
	return r.Fired(tick) - r.Fired(tick-1)
}

// MarshalText implements encoding.TextMarshaler.
func (r Ratio) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ratio) UnmarshalText(text []byte) error {
	parsed, err := ParseRatio(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

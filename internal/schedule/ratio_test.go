package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    Ratio
		wantErr bool
	}{
		{in: "1", want: Ratio{Num: 1, Den: 1}},
		{in: "3/2", want: Ratio{Num: 3, Den: 2}},
		{in: " 4 / 8 ", want: Ratio{Num: 1, Den: 2}},
		{in: "0", wantErr: true},
		{in: "1/0", wantErr: true},
		{in: "a/2", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRatio(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatioCompare(t *testing.T) {
	assert.True(t, Ratio{Num: 2, Den: 4}.Equal(Ratio{Num: 1, Den: 2}))
	assert.False(t, Ratio{Num: 2, Den: 3}.Equal(Ratio{Num: 1, Den: 2}))
	assert.True(t, Ratio{Num: 1, Den: 3}.Less(Ratio{Num: 1, Den: 2}))
	assert.False(t, Ratio{Num: 1, Den: 2}.Less(Ratio{Num: 1, Den: 2}))

	// cross products overflow 64 bits
	big := Ratio{Num: 1 << 63, Den: 3}
	bigger := Ratio{Num: 1 << 63, Den: 2}
	assert.True(t, big.Less(bigger))
}

func TestRatioPending(t *testing.T) {
	tests := []struct {
		name  string
		r     Ratio
		ticks uint64
		want  uint64
	}{
		{name: "every tick", r: Every(1), ticks: 10, want: 10},
		{name: "every third tick", r: Every(3), ticks: 10, want: 3},
		{name: "three per two ticks", r: Ratio{Num: 3, Den: 2}, ticks: 9, want: 6},
		{name: "twice per tick", r: Ratio{Num: 1, Den: 2}, ticks: 5, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total uint64
			for tick := uint64(1); tick <= tt.ticks; tick++ {
				total += tt.r.Pending(tick)
			}
			assert.Equal(t, tt.want, total)
			assert.Equal(t, tt.want, tt.r.Fired(tt.ticks))
		})
	}
}

func TestRatioFiredNoDrift(t *testing.T) {
	// 1/3 as a float accumulates error; the exact count must not.
	r := Ratio{Num: 10, Den: 3}
	const ticks = 3_000_000_000
	assert.Equal(t, uint64(900_000_000), r.Fired(ticks))
}

func TestRatioText(t *testing.T) {
	var r Ratio
	require.NoError(t, r.UnmarshalText([]byte("5/10")))
	assert.Equal(t, "1/2", r.String())

	out, err := Every(2).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2", string(out))
}

func TestRatioTooFast(t *testing.T) {
	tests := []struct {
		r    Ratio
		want bool
	}{
		{r: Every(1), want: false},
		{r: Ratio{Num: 1, Den: MaxPerTick}, want: false},
		{r: Ratio{Num: 1, Den: MaxPerTick + 1}, want: true},
		{r: Ratio{Num: 3, Den: 301}, want: true},
		{r: Ratio{Num: 1, Den: ^uint64(0)}, want: true},
		{r: Ratio{Num: ^uint64(0), Den: ^uint64(0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.TooFast())
		})
	}
}

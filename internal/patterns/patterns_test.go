package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// series returns 20 flat bars followed by the given tail, so the divergence
// window sees exactly the tail's last ten values.
func series(flat float64, tail ...float64) []float64 {
	out := make([]float64, 0, 20+len(tail))
	for i := 0; i < 20; i++ {
		out = append(out, flat)
	}
	return append(out, tail...)
}

func TestRSIDivergence_Bullish(t *testing.T) {
	// Price bottoms late in the window and recovers; RSI ends above its
	// own window low.
	closes := series(100, 99, 98, 97, 96, 95, 94, 90, 92, 93, 94)
	rsi := series(50, 45, 44, 43, 42, 41, 40, 35, 42, 48, 52)

	assert.Equal(t, 100.0, RSIDivergence(closes, rsi))
}

func TestRSIDivergence_Bearish(t *testing.T) {
	// Price tops late in the window then fades; RSI ends below its high.
	closes := series(100, 101, 102, 103, 104, 105, 106, 110, 108, 107, 106)
	rsi := series(50, 55, 56, 57, 58, 59, 60, 70, 62, 58, 55)

	assert.Equal(t, 0.0, RSIDivergence(closes, rsi))
}

func TestRSIDivergence_EarlyExtremumIsNeutral(t *testing.T) {
	// The low sits in the first half of the window, too early to qualify.
	closes := series(100, 90, 91, 92, 93, 94, 95, 96, 97, 98, 99)
	rsi := series(50, 35, 40, 42, 44, 46, 48, 50, 52, 54, 56)

	assert.Equal(t, 50.0, RSIDivergence(closes, rsi))
}

func TestRSIDivergence_ShortHistoryIsNeutral(t *testing.T) {
	short := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 50.0, RSIDivergence(short, short))
}

func TestMAStack(t *testing.T) {
	assert.Equal(t, 100.0, MAStack(110, 105, 100, 95))
	assert.Equal(t, 0.0, MAStack(95, 100, 105, 110))
	assert.Equal(t, 50.0, MAStack(100, 105, 100, 95))
}

func TestBreakoutProximity_NearHigh(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 109}
	highs := []float64{101, 102, 103, 104, 110}
	lows := []float64{99, 100, 101, 102, 108}

	got := BreakoutProximity(closes, highs, lows, 5)
	// Range 99..110, price 109: 1/11 from the high.
	assert.InDelta(t, 100-100.0/11.0, got, 1e-9)
	assert.Positive(t, got)
}

func TestBreakoutProximity_NearLow(t *testing.T) {
	closes := []float64{110, 109, 108, 107, 100}
	highs := []float64{111, 110, 109, 108, 101}
	lows := []float64{109, 108, 107, 106, 99}

	got := BreakoutProximity(closes, highs, lows, 5)
	assert.Negative(t, got)
}

func TestBreakoutProximity_FlatRange(t *testing.T) {
	flat := []float64{100, 100, 100, 100, 100}
	assert.Equal(t, 0.0, BreakoutProximity(flat, flat, flat, 5))
}

func TestBreakoutProximity_ShortSeries(t *testing.T) {
	closes := []float64{100}
	assert.Equal(t, 0.0, BreakoutProximity(closes, closes, closes, 20))
}

// Package percentile maps raw metric values onto a 0-100 score using
// piecewise-linear interpolation across a ladder of reference anchors.
package percentile

import "sort"

// Ladder is an ordered set of ascending reference anchors defining the
// percentile curve for one raw metric. Ladders are owned by configuration
// and read-only at analysis time.
type Ladder []float64

// Score converts value to a percentile score in [0, 100].
//
// The ladder is sorted ascending before use. Values at or below the first
// anchor score 0, values at or past the last anchor score 100, and values
// in between interpolate linearly between the bracketing anchors'
// percentile positions i/(n-1)*100. A degenerate ladder or a value no
// bracket admits (possible with repeated anchors under floating point)
// scores a neutral 50.
func Score(value float64, ladder Ladder) float64 {
	if len(ladder) < 2 {
		return 50
	}

	refs := make([]float64, len(ladder))
	copy(refs, ladder)
	sort.Float64s(refs)

	if value <= refs[0] {
		return 0
	}
	if value >= refs[len(refs)-1] {
		return 100
	}

	n := float64(len(refs) - 1)
	for i := 0; i < len(refs)-1; i++ {
		low, high := refs[i], refs[i+1]
		if value < low || value > high {
			continue
		}
		if high == low {
			continue
		}
		pctLow := float64(i) / n * 100
		pctHigh := float64(i+1) / n * 100
		ratio := (value - low) / (high - low)
		return pctLow + (pctHigh-pctLow)*ratio
	}

	return 50
}

// Inverse returns 100 - Score(value, ladder), used for metrics where a
// lower raw value is better (debt, short pressure, EPS volatility).
func Inverse(value float64, ladder Ladder) float64 {
	return 100 - Score(value, ladder)
}

// Package factors implements the independent factor calculators. Each one
// extracts raw signals from a symbol's data bundle, converts them to 0-100
// percentiles or ternary classifications, combines them with the
// configured sub-weights, and emits a 0-10 sub-score. Missing optional
// data degrades to a neutral score, never an error.
package factors

// Neutral is the sub-score emitted when an optional data bundle is absent.
const Neutral = 5.0

// clipScore scales a 0-100 weighted blend down to the 0-10 factor range.
func clipScore(weighted float64) float64 {
	return clamp(weighted/10, 0, 10)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package indicators computes the technical indicator series the factor
// calculators consume. All functions are pure: explicit indexed loops over
// the input slices, no shared state, and well-defined fallbacks instead of
// NaN/Inf on degenerate input.
package indicators

import "math"

// EMA computes an exponential moving average seeded with the simple
// average of the first period values. The returned series has length
// len(values)-period+1; it is empty when there is not enough history.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	out := make([]float64, 0, len(values)-period+1)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)
	out = append(out, seed)

	k := 2.0 / float64(period+1)
	prev := seed
	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out = append(out, prev)
	}
	return out
}

// SMA computes the simple average of values; 0 for an empty slice.
func SMA(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// RSI computes a Wilder-smoothed Relative Strength Index series aligned to
// closes (same length). Positions with insufficient history hold the
// neutral value 50, and a zero average loss yields 100 rather than a
// division by zero.
func RSI(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 {
		return []float64{50}
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i-1] = d
		} else {
			losses[i-1] = -d
		}
	}

	avgGain := SMA(gains[:period])
	avgLoss := SMA(losses[:period])

	out := make([]float64, len(closes))
	for i := 0; i < period; i++ {
		out[i] = 50
	}
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		out[i+1] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ATR computes a Wilder-smoothed Average True Range series. True range is
// max(high-low, |high-prevClose|, |low-prevClose|); the smoothing is
// seeded with the simple mean of the first period true ranges. The result
// is empty when history is shorter than period+1 bars.
func ATR(highs, lows, closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	tr := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i-1] = math.Max(hl, math.Max(hc, lc))
	}

	out := make([]float64, 0, len(tr)-period+1)
	atr := SMA(tr[:period])
	out = append(out, atr)
	for i := period; i < len(tr); i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out = append(out, atr)
	}
	return out
}

// VWAP computes the volume-weighted typical price (h+l+c)/3 over the
// trailing window, or over the full series when it is shorter. A zero
// volume sum falls back to the last close.
func VWAP(highs, lows, closes, volumes []float64, window int) float64 {
	if len(closes) == 0 {
		return 0
	}
	n := window
	if n > len(closes) || n <= 0 {
		n = len(closes)
	}

	var pv, vol float64
	for i := len(closes) - n; i < len(closes); i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		pv += typical * volumes[i]
		vol += volumes[i]
	}
	if vol == 0 {
		return closes[len(closes)-1]
	}
	return pv / vol
}

// BollingerWidth computes the Bollinger Band width series: for each rolling
// window of period closes, ((mean+kσ)-(mean-kσ))/mean*100. Zero-mean
// windows yield width 0. The series has length len(closes)-period+1.
func BollingerWidth(closes []float64, period int, stdMult float64) []float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}

	out := make([]float64, 0, len(closes)-period+1)
	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]
		mean := SMA(window)
		if mean == 0 {
			out = append(out, 0)
			continue
		}
		var variance float64
		for _, v := range window {
			variance += (v - mean) * (v - mean)
		}
		std := math.Sqrt(variance / float64(len(window)))
		upper := mean + std*stdMult
		lower := mean - std*stdMult
		out = append(out, (upper-lower)/mean*100)
	}
	return out
}

// ROC returns the percentage rate of change over the last n bars, or 0
// when the series is too short.
func ROC(closes []float64, n int) float64 {
	if n <= 0 || len(closes) <= n {
		return 0
	}
	base := closes[len(closes)-1-n]
	if base == 0 {
		return 0
	}
	return (closes[len(closes)-1]/base - 1) * 100
}

// HighestOver returns the maximum over the trailing n values.
func HighestOver(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if n > len(values) || n <= 0 {
		n = len(values)
	}
	max := values[len(values)-n]
	for _, v := range values[len(values)-n:] {
		if v > max {
			max = v
		}
	}
	return max
}

// LowestOver returns the minimum over the trailing n values.
func LowestOver(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if n > len(values) || n <= 0 {
		n = len(values)
	}
	min := values[len(values)-n]
	for _, v := range values[len(values)-n:] {
		if v < min {
			min = v
		}
	}
	return min
}

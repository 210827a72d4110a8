// Package patterns holds the price-action heuristics layered on top of the
// raw indicator series: RSI divergence, moving-average stack state, and
// breakout proximity. Divergence and stack are ternary signals (0, 50,
// 100); breakout proximity is a signed percentage that callers normalize.
package patterns

// divergenceWindow is the number of trailing bars inspected for divergence.
// The extremum must sit in the later half of the window so the move off it
// is recent enough to matter.
const divergenceWindow = 10

// RSIDivergence compares price and RSI extrema over the last ten bars.
// Returns 100 on bullish divergence (price recovering off its recent low
// while RSI holds above its own low), 0 on the mirrored bearish condition
// on highs, and 50 when neither holds or history is too short.
func RSIDivergence(closes, rsi []float64) float64 {
	if len(closes) < 20 || len(rsi) < 20 {
		return 50
	}

	pc := closes[len(closes)-divergenceWindow:]
	pr := rsi[len(rsi)-divergenceWindow:]

	priceHighIdx := argMax(pc)
	priceLowIdx := argMin(pc)
	rsiHighIdx := argMax(pr)
	rsiLowIdx := argMin(pr)

	if priceLowIdx > divergenceWindow/2 && pc[len(pc)-1] > pc[priceLowIdx] {
		if pr[len(pr)-1] > pr[rsiLowIdx] {
			return 100
		}
	}

	if priceHighIdx > divergenceWindow/2 && pc[len(pc)-1] < pc[priceHighIdx] {
		if pr[len(pr)-1] < pr[rsiHighIdx] {
			return 0
		}
	}

	return 50
}

// MAStack classifies the EMA hierarchy: 100 for a full bullish stack
// (price > EMA20 > EMA50 > EMA200), 0 for the full inversion, 50 otherwise.
func MAStack(price, ema20, ema50, ema200 float64) float64 {
	switch {
	case price > ema20 && ema20 > ema50 && ema50 > ema200:
		return 100
	case price < ema20 && ema20 < ema50 && ema50 < ema200:
		return 0
	default:
		return 50
	}
}

// BreakoutProximity measures how close the current price sits to the
// rolling period-bar high versus low, as a percentage of the range.
// Positive values mean the price is nearer a breakout, negative values
// nearer a breakdown. A flat range or short series returns 0.
func BreakoutProximity(closes, highs, lows []float64, period int) float64 {
	if len(closes) < period {
		return 0
	}

	recentHigh := maxOver(highs, period)
	recentLow := minOver(lows, period)
	price := closes[len(closes)-1]

	rangeSize := recentHigh - recentLow
	if rangeSize == 0 {
		return 0
	}

	distToHigh := (recentHigh - price) / rangeSize * 100
	distToLow := (price - recentLow) / rangeSize * 100

	if distToHigh < distToLow {
		return 100 - distToHigh
	}
	return -(100 - distToLow)
}

func argMax(values []float64) int {
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}
	return idx
}

func argMin(values []float64) int {
	idx := 0
	for i, v := range values {
		if v < values[idx] {
			idx = i
		}
	}
	return idx
}

func maxOver(values []float64, n int) float64 {
	if n > len(values) {
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

func minOver(values []float64, n int) float64 {
	if n > len(values) {
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

package factors

import (
	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
	"github.com/momentum33/stock-analysis-system/internal/patterns"
	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// TechnicalScore blends RSI divergence, ATR expansion, the EMA stack
// classification, and breakout proximity in equal parts by default.
func TechnicalScore(cfg *config.Config, bars []domain.PriceBar) float64 {
	closes := domain.Closes(bars)
	highs := domain.Highs(bars)
	lows := domain.Lows(bars)

	tc := cfg.Technical

	rsi := indicators.RSI(closes, tc.RSIPeriod)
	divergence := patterns.RSIDivergence(closes, rsi)

	// Ratio of current ATR to ATR one lookback ago; >1 means volatility
	// is expanding.
	atr := indicators.ATR(highs, lows, closes, tc.ATRPeriod)
	atrExpPct := 50.0
	if len(atr) > tc.ATRLookback {
		prior := atr[len(atr)-1-tc.ATRLookback]
		expansion := 1.0
		if prior > 0 {
			expansion = atr[len(atr)-1] / prior
		}
		atrExpPct = percentile.Score(expansion, tc.ATRExpansionLadder)
	}

	price := closes[len(closes)-1]
	maStack := patterns.MAStack(price,
		lastOr(indicators.EMA(closes, 20), price),
		lastOr(indicators.EMA(closes, 50), price),
		lastOr(indicators.EMA(closes, 200), price))

	breakout := patterns.BreakoutProximity(closes, highs, lows, tc.BreakoutPeriod)
	breakoutPct := percentile.Score(breakout, tc.BreakoutLadder)

	w := tc.Weights
	score := w.RSIDivergence*divergence +
		w.ATRExpansion*atrExpPct +
		w.MAStack*maStack +
		w.BreakoutProx*breakoutPct

	return clipScore(score)
}

func lastOr(series []float64, fallback float64) float64 {
	if len(series) == 0 {
		return fallback
	}
	return series[len(series)-1]
}

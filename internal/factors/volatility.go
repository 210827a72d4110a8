package factors

import (
	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// VolatilityScore blends ATR as a percentage of price with the Bollinger
// squeeze-to-expansion signal. The factor favors volatility that is
// expanding out of a compressed range.
func VolatilityScore(cfg *config.Config, bars []domain.PriceBar) float64 {
	closes := domain.Closes(bars)
	highs := domain.Highs(bars)
	lows := domain.Lows(bars)

	vc := cfg.Volatility

	atr := indicators.ATR(highs, lows, closes, vc.ATRPeriod)
	atrPct := 50.0
	if len(atr) > 0 && closes[len(closes)-1] > 0 {
		atrPercent := atr[len(atr)-1] / closes[len(closes)-1] * 100
		atrPct = percentile.Score(atrPercent, vc.ATRPercentLadder)
	}

	bbSignal := bollingerSignal(closes, vc)

	w := vc.Weights
	score := w.ATRPercent*atrPct + w.BBSignal*bbSignal

	return clipScore(score)
}

// bollingerSignal ranks today's band width against its own history and
// compares that rank to the rank one lookback ago. A rising rank means the
// squeeze is releasing. Width history shorter than lookback+1 keeps the
// prior rank at a neutral 50.
func bollingerSignal(closes []float64, vc config.VolatilityConfig) float64 {
	width := indicators.BollingerWidth(closes, vc.BBPeriod, vc.BBStd)
	if len(width) <= vc.BBLookback {
		return 50
	}

	today := rankPercent(width[:len(width)-1], width[len(width)-1])

	prior := 50.0
	if len(width) > vc.BBLookback+1 {
		cut := len(width) - 1 - vc.BBLookback
		prior = rankPercent(width[:cut], width[cut])
	}

	return clamp((today-prior)*0.5+50, 0, 100)
}

// rankPercent returns the share of history strictly below value, 0-100.
func rankPercent(history []float64, value float64) float64 {
	if len(history) == 0 {
		return 50
	}
	below := 0
	for _, v := range history {
		if v < value {
			below++
		}
	}
	return float64(below) / float64(len(history)) * 100
}

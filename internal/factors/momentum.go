package factors

import (
	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// MomentumScore blends short and medium rate-of-change, EMA(20) slope,
// price position versus VWAP, and EMA trend alignment into one 0-10 score.
func MomentumScore(cfg *config.Config, bars []domain.PriceBar) float64 {
	closes := domain.Closes(bars)
	highs := domain.Highs(bars)
	lows := domain.Lows(bars)
	volumes := domain.Volumes(bars)

	mc := cfg.Momentum

	roc5Pct := percentile.Score(indicators.ROC(closes, 5), mc.ROC5Ladder)
	roc20Pct := percentile.Score(indicators.ROC(closes, 20), mc.ROC20Ladder)

	// EMA(20) slope over the lookback, expressed as % of current price.
	ema20 := indicators.EMA(closes, 20)
	emaSlopePct := 50.0
	if len(ema20) > mc.SlopeLookback && closes[len(closes)-1] != 0 {
		slope := (ema20[len(ema20)-1] - ema20[len(ema20)-1-mc.SlopeLookback]) /
			closes[len(closes)-1] * 100
		emaSlopePct = percentile.Score(slope, mc.EMASlopeLadder)
	}

	vwap := indicators.VWAP(highs, lows, closes, volumes, 20)
	vwapSign := 0.0
	if closes[len(closes)-1] > vwap {
		vwapSign = 100
	}

	price := closes[len(closes)-1]
	ema20Val := price
	if len(ema20) > 0 {
		ema20Val = ema20[len(ema20)-1]
	}
	ema50 := indicators.EMA(closes, 50)
	ema50Val := ema20Val
	if len(ema50) > 0 {
		ema50Val = ema50[len(ema50)-1]
	}
	trendAlign := 0.0
	if price > ema20Val && ema20Val > ema50Val {
		trendAlign = 100
	}

	w := mc.Weights
	score := w.ROC5*roc5Pct +
		w.ROC20*roc20Pct +
		w.EMASlope*emaSlopePct +
		w.VWAPSign*vwapSign +
		w.TrendAlign*trendAlign

	return clipScore(score)
}

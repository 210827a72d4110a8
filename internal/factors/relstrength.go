package factors

import (
	"math"

	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// RelativeStrengthScore measures outperformance versus the market
// benchmark and the sector ETF over the comparison period. In a choppy
// market the blend shifts toward the weighted RS legs; in a trending
// market it stays closer to an even split.
func RelativeStrengthScore(cfg *config.Config, bars, benchmark, sector []domain.PriceBar) float64 {
	rc := cfg.RelativeStrength
	period := rc.ComparisonPeriod

	if len(bars) <= period || len(benchmark) <= period {
		return Neutral
	}

	closes := domain.Closes(bars)
	benchCloses := domain.Closes(benchmark)

	stockROC := indicators.ROC(closes, period)
	benchROC := indicators.ROC(benchCloses, period)

	vsBench := percentile.Score(stockROC-benchROC, rc.DeltaLadder)

	vsSector := vsBench
	if len(sector) > period {
		sectorROC := indicators.ROC(domain.Closes(sector), period)
		vsSector = percentile.Score(stockROC-sectorROC, rc.DeltaLadder)
	}

	adj := rc.BreadthAdjustment.Normal
	if isChoppy(benchmark, rc) {
		adj = rc.BreadthAdjustment.Choppy
	}

	w := rc.Weights
	score := adj*(w.VsBenchmark*vsBench+w.VsSector*vsSector) +
		(1-adj)*0.5*(vsBench+vsSector)

	return clipScore(score)
}

// isChoppy flags a directionless benchmark: 20-day ROC inside the chop
// threshold while ATR is higher than 10 bars ago.
func isChoppy(benchmark []domain.PriceBar, rc config.RelativeStrengthConfig) bool {
	closes := domain.Closes(benchmark)

	roc20 := 0.0
	if len(closes) > 20 {
		roc20 = indicators.ROC(closes, 20)
	}
	if math.Abs(roc20) >= rc.ChopThreshold*100 {
		return false
	}

	atr := indicators.ATR(domain.Highs(benchmark), domain.Lows(benchmark), closes, rc.ChopATRPeriod)
	return len(atr) > 10 && atr[len(atr)-1] > atr[len(atr)-11]
}

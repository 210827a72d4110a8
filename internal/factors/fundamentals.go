package factors

import (
	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// FundamentalQualityScore blends ROIC, FCF yield, inverse debt/equity, and
// inverse EPS-growth volatility. A missing or empty snapshot is neutral,
// not an error.
func FundamentalQualityScore(cfg *config.Config, fin *domain.FinancialSnapshot) float64 {
	if fin == nil || fin.IsEmpty() {
		return Neutral
	}

	qc := cfg.Quality

	roicPct := percentile.Score(domain.Float(fin.ROIC, 0), qc.ROICLadder)
	fcfPct := percentile.Score(domain.Float(fin.FCFYield, 0), qc.FCFYieldLadder)

	// Lower leverage and steadier earnings score higher.
	debtScore := percentile.Inverse(domain.Float(fin.DebtToEquity, 1.0), qc.DebtLadder)
	epsScore := percentile.Inverse(domain.Float(fin.EPSStability, 50), qc.EPSStdevLadder)

	w := qc.Weights
	score := w.ROIC*roicPct +
		w.FCFYield*fcfPct +
		w.DebtToEquity*debtScore +
		w.EPSStability*epsScore

	return clipScore(score)
}

// ShortInterestScore rewards low short pressure: inverse days-to-cover,
// inverse short float, and inverse one-month short-interest change.
func ShortInterestScore(cfg *config.Config, si *domain.ShortInterestSnapshot) float64 {
	if si == nil || si.IsEmpty() {
		return Neutral
	}

	sc := cfg.ShortInterest

	dtcScore := percentile.Inverse(domain.Float(si.DaysToCover, 3), sc.DaysToCoverLadder)
	floatScore := percentile.Inverse(domain.Float(si.ShortFloatPercent, 10), sc.ShortFloatLadder)
	changeScore := percentile.Inverse(domain.Float(si.ShortChange1M, 0), sc.ShortChangeLadder)

	w := sc.Weights
	score := w.DaysToCover*dtcScore +
		w.ShortFloat*floatScore +
		w.ShortChange*changeScore

	return clipScore(score)
}

// GrowthScore blends one-year revenue growth, one-year EPS growth, and the
// five-year CAGR.
func GrowthScore(cfg *config.Config, g *domain.GrowthMetrics) float64 {
	if g == nil || g.IsEmpty() {
		return Neutral
	}

	gc := cfg.Growth

	revPct := percentile.Score(domain.Float(g.RevenueGrowth1Y, 0), gc.RevenueLadder)
	epsPct := percentile.Score(domain.Float(g.EPSGrowth1Y, 0), gc.EPSLadder)
	cagrPct := percentile.Score(domain.Float(g.CAGR5Y, 0), gc.CAGRLadder)

	w := gc.Weights
	score := w.RevenueGrowth*revPct +
		w.EPSGrowth*epsPct +
		w.CAGR5Y*cagrPct

	return clipScore(score)
}

package config

import "github.com/momentum33/stock-analysis-system/internal/percentile"

// Default returns the built-in configuration. The weights, reference
// ladders, thresholds, and lexicons are the production calibration; a
// YAML file layered on top overrides individual values.
func Default() *Config {
	cfg := &Config{
		MinDataPoints: 200,
		Weights: FactorWeights{
			Momentum:           0.20,
			Volume:             0.12,
			Technical:          0.18,
			Volatility:         0.08,
			RelativeStrength:   0.12,
			Catalyst:           0.10,
			FundamentalQuality: 0.10,
			ShortInterest:      0.05,
			Growth:             0.05,
		},
		SectorETFs: map[string]string{
			"Technology":             "XLK",
			"Financial Services":     "XLF",
			"Healthcare":             "XLV",
			"Consumer Cyclical":      "XLY",
			"Consumer Defensive":     "XLP",
			"Industrials":            "XLI",
			"Energy":                 "XLE",
			"Utilities":              "XLU",
			"Real Estate":            "XLRE",
			"Basic Materials":        "XLB",
			"Communication Services": "XLC",
		},
	}

	cfg.Momentum.SlopeLookback = 5
	cfg.Momentum.Weights.ROC5 = 0.30
	cfg.Momentum.Weights.ROC20 = 0.30
	cfg.Momentum.Weights.EMASlope = 0.20
	cfg.Momentum.Weights.VWAPSign = 0.10
	cfg.Momentum.Weights.TrendAlign = 0.10
	cfg.Momentum.ROC5Ladder = percentile.Ladder{-10, -5, -2, 0, 2, 5, 10, 20}
	cfg.Momentum.ROC20Ladder = percentile.Ladder{-20, -10, -5, 0, 5, 10, 20, 40}
	cfg.Momentum.EMASlopeLadder = percentile.Ladder{-2, -1, -0.5, 0, 0.5, 1, 2, 4}

	cfg.Volume.RelVolPeriod = 20
	cfg.Volume.SpikeLookback = 200
	cfg.Volume.ClusterPeriod = 10
	cfg.Volume.ClusterThreshold = 1.5
	cfg.Volume.Weights.RelVol = 0.50
	cfg.Volume.Weights.SpikePercentile = 0.30
	cfg.Volume.Weights.HVCluster = 0.20
	cfg.Volume.RelVolLadder = percentile.Ladder{0.5, 0.7, 0.9, 1.0, 1.2, 1.5, 2.0, 3.0}
	cfg.Volume.ClusterLadder = percentile.Ladder{0, 10, 20, 30, 40, 50, 60, 80}

	cfg.Technical.RSIPeriod = 14
	cfg.Technical.ATRPeriod = 14
	cfg.Technical.ATRLookback = 14
	cfg.Technical.BreakoutPeriod = 20
	cfg.Technical.Weights.RSIDivergence = 0.25
	cfg.Technical.Weights.ATRExpansion = 0.25
	cfg.Technical.Weights.MAStack = 0.25
	cfg.Technical.Weights.BreakoutProx = 0.25
	cfg.Technical.ATRExpansionLadder = percentile.Ladder{0.8, 0.9, 0.95, 1.0, 1.05, 1.1, 1.2, 1.5}
	cfg.Technical.BreakoutLadder = percentile.Ladder{-20, -10, -5, 0, 5, 10, 20, 40}

	cfg.Volatility.ATRPeriod = 14
	cfg.Volatility.BBPeriod = 20
	cfg.Volatility.BBStd = 2.0
	cfg.Volatility.BBLookback = 10
	cfg.Volatility.Weights.ATRPercent = 0.60
	cfg.Volatility.Weights.BBSignal = 0.40
	cfg.Volatility.ATRPercentLadder = percentile.Ladder{1, 2, 3, 4, 5, 6, 8, 12}

	cfg.RelativeStrength.ComparisonPeriod = 5
	cfg.RelativeStrength.ChopThreshold = 0.01
	cfg.RelativeStrength.ChopATRPeriod = 20
	cfg.RelativeStrength.Weights.VsBenchmark = 0.60
	cfg.RelativeStrength.Weights.VsSector = 0.40
	cfg.RelativeStrength.BreadthAdjustment.Normal = 0.5
	cfg.RelativeStrength.BreadthAdjustment.Choppy = 0.7
	cfg.RelativeStrength.DeltaLadder = percentile.Ladder{-10, -5, -2, 0, 2, 5, 10, 20}

	cfg.Catalyst.EarningsWindowDays = 3
	cfg.Catalyst.EarningsBoost = 70
	cfg.Catalyst.PRBonus = 15
	cfg.Catalyst.NegativeCap = 30
	cfg.Catalyst.Keywords = Lexicon{
		Positive: []string{
			"beat", "exceed", "strong", "growth", "upgrade",
			"breakthrough", "record", "surge", "rally", "momentum",
			"bullish", "outperform", "expansion", "innovation",
			"partnership", "acquisition", "approved", "launched",
		},
		Negative: []string{
			"miss", "weak", "decline", "downgrade", "concern",
			"investigation", "probe", "lawsuit", "recall", "cut",
			"bearish", "underperform", "loss", "delay", "suspended",
			"warning", "restructuring", "bankruptcy",
		},
		MajorPositive: []string{
			"fda approval", "major contract", "breakthrough",
			"record earnings", "strategic partnership",
		},
		MajorNegative: []string{
			"sec probe", "guidance cut", "class action",
			"bankruptcy", "delisting",
		},
	}

	cfg.Quality.Weights.ROIC = 0.35
	cfg.Quality.Weights.FCFYield = 0.35
	cfg.Quality.Weights.DebtToEquity = 0.15
	cfg.Quality.Weights.EPSStability = 0.15
	cfg.Quality.ROICLadder = percentile.Ladder{0, 5, 10, 15, 20, 30, 40, 60}
	cfg.Quality.FCFYieldLadder = percentile.Ladder{0, 2, 4, 6, 8, 10, 15, 25}
	cfg.Quality.DebtLadder = percentile.Ladder{0, 0.2, 0.5, 1.0, 1.5, 2.0, 3.0, 5.0}
	cfg.Quality.EPSStdevLadder = percentile.Ladder{0, 10, 20, 30, 50, 75, 100, 150}

	cfg.ShortInterest.Weights.DaysToCover = 0.40
	cfg.ShortInterest.Weights.ShortFloat = 0.40
	cfg.ShortInterest.Weights.ShortChange = 0.20
	cfg.ShortInterest.DaysToCoverLadder = percentile.Ladder{0, 1, 2, 3, 5, 7, 10, 15}
	cfg.ShortInterest.ShortFloatLadder = percentile.Ladder{0, 5, 10, 15, 20, 30, 40, 60}
	cfg.ShortInterest.ShortChangeLadder = percentile.Ladder{-50, -25, -10, 0, 10, 25, 50, 100}

	cfg.Growth.Weights.RevenueGrowth = 0.40
	cfg.Growth.Weights.EPSGrowth = 0.40
	cfg.Growth.Weights.CAGR5Y = 0.20
	cfg.Growth.RevenueLadder = percentile.Ladder{-10, 0, 5, 10, 15, 25, 40, 60}
	cfg.Growth.EPSLadder = percentile.Ladder{-20, 0, 10, 20, 30, 50, 75, 100}
	cfg.Growth.CAGRLadder = percentile.Ladder{-5, 0, 5, 10, 15, 20, 30, 50}

	cfg.Screener.MinPrice = 2.0
	cfg.Screener.MaxPrice = 10000
	cfg.Screener.MinAvgVolume = 100000

	return cfg
}

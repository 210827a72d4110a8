// Package config defines the immutable configuration for the scoring
// engine: top-level factor weights, per-factor sub-weights, percentile
// reference ladders, detector thresholds, and the sentiment lexicons.
// Configuration is loaded and validated once at startup and passed by
// pointer into every component; nothing mutates it afterwards.
package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

// weightSumTolerance is the allowed deviation from 1.0 for any weight group.
const weightSumTolerance = 1e-3

// FactorWeights are the nine top-level composite weights. They must sum
// to 1.0. The auxiliary options factor is reported but carries no
// composite weight.
type FactorWeights struct {
	Momentum           float64 `yaml:"momentum_score"`
	Volume             float64 `yaml:"volume_score"`
	Technical          float64 `yaml:"technical_score"`
	Volatility         float64 `yaml:"volatility_score"`
	RelativeStrength   float64 `yaml:"relative_strength_score"`
	Catalyst           float64 `yaml:"catalyst_score"`
	FundamentalQuality float64 `yaml:"fundamental_quality_score"`
	ShortInterest      float64 `yaml:"short_interest_score"`
	Growth             float64 `yaml:"growth_score"`
}

// Sum returns the total of the nine top-level weights.
func (w FactorWeights) Sum() float64 {
	return w.Momentum + w.Volume + w.Technical + w.Volatility +
		w.RelativeStrength + w.Catalyst + w.FundamentalQuality +
		w.ShortInterest + w.Growth
}

// MomentumConfig drives the momentum factor.
type MomentumConfig struct {
	SlopeLookback int `yaml:"slope_lookback"`

	Weights struct {
		ROC5       float64 `yaml:"roc_5"`
		ROC20      float64 `yaml:"roc_20"`
		EMASlope   float64 `yaml:"ema_slope"`
		VWAPSign   float64 `yaml:"vwap_sign"`
		TrendAlign float64 `yaml:"trend_align"`
	} `yaml:"weights"`

	ROC5Ladder     percentile.Ladder `yaml:"roc_5_refs"`
	ROC20Ladder    percentile.Ladder `yaml:"roc_20_refs"`
	EMASlopeLadder percentile.Ladder `yaml:"ema_slope_refs"`
}

// VolumeConfig drives the volume factor.
type VolumeConfig struct {
	RelVolPeriod     int     `yaml:"rel_vol_period"`
	SpikeLookback    int     `yaml:"spike_lookback"`
	ClusterPeriod    int     `yaml:"cluster_period"`
	ClusterThreshold float64 `yaml:"cluster_threshold"`

	Weights struct {
		RelVol          float64 `yaml:"rel_vol"`
		SpikePercentile float64 `yaml:"spike_percentile"`
		HVCluster       float64 `yaml:"hv_cluster"`
	} `yaml:"weights"`

	RelVolLadder  percentile.Ladder `yaml:"rel_vol_refs"`
	ClusterLadder percentile.Ladder `yaml:"hv_cluster_refs"`
}

// TechnicalConfig drives the technical factor.
type TechnicalConfig struct {
	RSIPeriod      int `yaml:"rsi_period"`
	ATRPeriod      int `yaml:"atr_period"`
	ATRLookback    int `yaml:"atr_lookback"`
	BreakoutPeriod int `yaml:"breakout_period"`

	Weights struct {
		RSIDivergence float64 `yaml:"rsi_divergence"`
		ATRExpansion  float64 `yaml:"atr_expansion"`
		MAStack       float64 `yaml:"ma_stack"`
		BreakoutProx  float64 `yaml:"breakout_prox"`
	} `yaml:"weights"`

	ATRExpansionLadder percentile.Ladder `yaml:"atr_expansion_refs"`
	BreakoutLadder     percentile.Ladder `yaml:"breakout_prox_refs"`
}

// VolatilityConfig drives the volatility factor.
type VolatilityConfig struct {
	ATRPeriod  int     `yaml:"atr_period"`
	BBPeriod   int     `yaml:"bb_period"`
	BBStd      float64 `yaml:"bb_std"`
	BBLookback int     `yaml:"bb_lookback"`

	Weights struct {
		ATRPercent float64 `yaml:"atr_percent"`
		BBSignal   float64 `yaml:"bb_signal"`
	} `yaml:"weights"`

	ATRPercentLadder percentile.Ladder `yaml:"atr_percent_refs"`
}

// RelativeStrengthConfig drives the relative-strength factor, including
// the choppy-market detector that shifts the blend toward pure RS.
type RelativeStrengthConfig struct {
	ComparisonPeriod int     `yaml:"comparison_period"`
	ChopThreshold    float64 `yaml:"chop_threshold"`
	ChopATRPeriod    int     `yaml:"chop_atr_period"`

	Weights struct {
		VsBenchmark float64 `yaml:"vs_spy"`
		VsSector    float64 `yaml:"vs_sector"`
	} `yaml:"weights"`

	BreadthAdjustment struct {
		Normal float64 `yaml:"normal"`
		Choppy float64 `yaml:"choppy"`
	} `yaml:"breadth_adjustment"`

	DeltaLadder percentile.Ladder `yaml:"roc_delta_refs"`
}

// Lexicon is the keyword list set used for news sentiment. Matching is
// case-insensitive substring containment over title plus body.
type Lexicon struct {
	Positive      []string `yaml:"positive"`
	Negative      []string `yaml:"negative"`
	MajorPositive []string `yaml:"major_positive"`
	MajorNegative []string `yaml:"major_negative"`
}

// CatalystConfig drives the catalyst factor.
type CatalystConfig struct {
	EarningsWindowDays int     `yaml:"earnings_window_days"`
	EarningsBoost      float64 `yaml:"earnings_boost"`
	PRBonus            float64 `yaml:"pr_bonus"`
	NegativeCap        float64 `yaml:"negative_cap"`
	Keywords           Lexicon `yaml:"sentiment_keywords"`
}

// QualityConfig drives the fundamental-quality factor.
type QualityConfig struct {
	Weights struct {
		ROIC         float64 `yaml:"roic"`
		FCFYield     float64 `yaml:"fcf_yield"`
		DebtToEquity float64 `yaml:"debt_to_equity"`
		EPSStability float64 `yaml:"eps_stability"`
	} `yaml:"metrics"`

	ROICLadder     percentile.Ladder `yaml:"roic_refs"`
	FCFYieldLadder percentile.Ladder `yaml:"fcf_yield_refs"`
	DebtLadder     percentile.Ladder `yaml:"debt_to_equity_refs"`
	EPSStdevLadder percentile.Ladder `yaml:"eps_stdev_refs"`
}

// ShortInterestConfig drives the short-interest factor.
type ShortInterestConfig struct {
	Weights struct {
		DaysToCover float64 `yaml:"days_to_cover"`
		ShortFloat  float64 `yaml:"short_float"`
		ShortChange float64 `yaml:"short_change"`
	} `yaml:"metrics"`

	DaysToCoverLadder percentile.Ladder `yaml:"days_to_cover_refs"`
	ShortFloatLadder  percentile.Ladder `yaml:"short_float_refs"`
	ShortChangeLadder percentile.Ladder `yaml:"short_change_refs"`
}

// GrowthConfig drives the growth factor.
type GrowthConfig struct {
	Weights struct {
		RevenueGrowth float64 `yaml:"revenue_growth"`
		EPSGrowth     float64 `yaml:"eps_growth"`
		CAGR5Y        float64 `yaml:"cagr_5y"`
	} `yaml:"metrics"`

	RevenueLadder percentile.Ladder `yaml:"revenue_growth_refs"`
	EPSLadder     percentile.Ladder `yaml:"eps_growth_refs"`
	CAGRLadder    percentile.Ladder `yaml:"cagr_refs"`
}

// ScreenerConfig are the pre-analysis filters applied before the full
// pipeline runs on a symbol.
type ScreenerConfig struct {
	MinPrice     float64 `yaml:"min_price"`
	MaxPrice     float64 `yaml:"max_price"`
	MinAvgVolume float64 `yaml:"min_avg_volume"`
}

// Config is the complete engine configuration.
type Config struct {
	MinDataPoints int `yaml:"min_data_points"`

	Weights          FactorWeights          `yaml:"weights"`
	Momentum         MomentumConfig         `yaml:"momentum"`
	Volume           VolumeConfig           `yaml:"volume"`
	Technical        TechnicalConfig        `yaml:"technical"`
	Volatility       VolatilityConfig       `yaml:"volatility"`
	RelativeStrength RelativeStrengthConfig `yaml:"relative_strength"`
	Catalyst         CatalystConfig         `yaml:"catalyst"`
	Quality          QualityConfig          `yaml:"fundamental_quality"`
	ShortInterest    ShortInterestConfig    `yaml:"short_interest"`
	Growth           GrowthConfig           `yaml:"growth"`
	Screener         ScreenerConfig         `yaml:"screener"`

	// SectorETFs maps a profile sector name to the ETF symbol used for
	// the sector leg of relative strength.
	SectorETFs map[string]string `yaml:"sector_etf_map"`
}

// Load reads a YAML config file layered over the defaults and validates
// the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate asserts every weight group sums to 1.0 within tolerance, every
// ladder is usable, and the lexicons are populated. It must pass before
// any scoring runs.
func (c *Config) Validate() error {
	if c.MinDataPoints <= 0 {
		return fmt.Errorf("min_data_points must be positive, got %d", c.MinDataPoints)
	}

	groups := []struct {
		name string
		sum  float64
	}{
		{"composite weights", c.Weights.Sum()},
		{"momentum weights", c.Momentum.Weights.ROC5 + c.Momentum.Weights.ROC20 +
			c.Momentum.Weights.EMASlope + c.Momentum.Weights.VWAPSign + c.Momentum.Weights.TrendAlign},
		{"volume weights", c.Volume.Weights.RelVol + c.Volume.Weights.SpikePercentile +
			c.Volume.Weights.HVCluster},
		{"technical weights", c.Technical.Weights.RSIDivergence + c.Technical.Weights.ATRExpansion +
			c.Technical.Weights.MAStack + c.Technical.Weights.BreakoutProx},
		{"volatility weights", c.Volatility.Weights.ATRPercent + c.Volatility.Weights.BBSignal},
		{"relative strength weights", c.RelativeStrength.Weights.VsBenchmark +
			c.RelativeStrength.Weights.VsSector},
		{"fundamental quality metrics", c.Quality.Weights.ROIC + c.Quality.Weights.FCFYield +
			c.Quality.Weights.DebtToEquity + c.Quality.Weights.EPSStability},
		{"short interest metrics", c.ShortInterest.Weights.DaysToCover +
			c.ShortInterest.Weights.ShortFloat + c.ShortInterest.Weights.ShortChange},
		{"growth metrics", c.Growth.Weights.RevenueGrowth + c.Growth.Weights.EPSGrowth +
			c.Growth.Weights.CAGR5Y},
	}
	for _, g := range groups {
		if math.Abs(g.sum-1.0) > weightSumTolerance {
			return fmt.Errorf("%s sum to %.4f, expected 1.0 ± %.3f", g.name, g.sum, weightSumTolerance)
		}
	}

	ladders := map[string]percentile.Ladder{
		"momentum.roc_5_refs":                  c.Momentum.ROC5Ladder,
		"momentum.roc_20_refs":                 c.Momentum.ROC20Ladder,
		"momentum.ema_slope_refs":              c.Momentum.EMASlopeLadder,
		"volume.rel_vol_refs":                  c.Volume.RelVolLadder,
		"volume.hv_cluster_refs":               c.Volume.ClusterLadder,
		"technical.atr_expansion_refs":         c.Technical.ATRExpansionLadder,
		"technical.breakout_prox_refs":         c.Technical.BreakoutLadder,
		"volatility.atr_percent_refs":          c.Volatility.ATRPercentLadder,
		"relative_strength.roc_delta_refs":     c.RelativeStrength.DeltaLadder,
		"fundamental_quality.roic_refs":        c.Quality.ROICLadder,
		"fundamental_quality.fcf_yield_refs":   c.Quality.FCFYieldLadder,
		"fundamental_quality.debt_refs":        c.Quality.DebtLadder,
		"fundamental_quality.eps_stdev_refs":   c.Quality.EPSStdevLadder,
		"short_interest.days_to_cover_refs":    c.ShortInterest.DaysToCoverLadder,
		"short_interest.short_float_refs":      c.ShortInterest.ShortFloatLadder,
		"short_interest.short_change_refs":     c.ShortInterest.ShortChangeLadder,
		"growth.revenue_growth_refs":           c.Growth.RevenueLadder,
		"growth.eps_growth_refs":               c.Growth.EPSLadder,
		"growth.cagr_refs":                     c.Growth.CAGRLadder,
	}
	for name, ladder := range ladders {
		if len(ladder) < 2 {
			return fmt.Errorf("ladder %s needs at least 2 anchors, got %d", name, len(ladder))
		}
		if !sort.Float64sAreSorted(ladder) {
			// Ladders are re-sorted defensively at score time; a
			// misordered config is still rejected up front.
			return fmt.Errorf("ladder %s anchors are not ascending", name)
		}
	}

	if len(c.Catalyst.Keywords.Positive) == 0 || len(c.Catalyst.Keywords.Negative) == 0 {
		return fmt.Errorf("catalyst sentiment lexicons must not be empty")
	}
	if c.RelativeStrength.BreadthAdjustment.Normal <= 0 || c.RelativeStrength.BreadthAdjustment.Choppy <= 0 {
		return fmt.Errorf("relative strength breadth adjustments must be positive")
	}

	return nil
}

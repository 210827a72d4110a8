// Package analyzer runs the full scoring pipeline for a symbol: the nine
// factor calculators, the weighted composite, and the reporting metrics
// snapshot. Each analysis is a pure function of its input bundle and the
// shared read-only configuration, so batches parallelize per symbol.
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/factors"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
)

// ErrInsufficientHistory is returned when a symbol has fewer bars than the
// configured minimum. It is an expected local condition, not a failure of
// the batch.
var ErrInsufficientHistory = errors.New("insufficient price history")

// Analyzer scores symbols against an immutable configuration.
type Analyzer struct {
	cfg *config.Config
	now func() time.Time
}

// New creates an analyzer. The configuration must already be validated.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg, now: time.Now}
}

// NewWithClock creates an analyzer with a fixed clock, pinning the
// catalyst earnings window for reproducible runs and tests.
func NewWithClock(cfg *config.Config, now func() time.Time) *Analyzer {
	return &Analyzer{cfg: cfg, now: now}
}

// Analyze scores one symbol. It returns ErrInsufficientHistory when the
// bundle's historical series is shorter than the configured minimum.
func (a *Analyzer) Analyze(bundle *domain.Bundle) (*domain.ScoreResult, error) {
	if bundle == nil || len(bundle.Historical) < a.cfg.MinDataPoints {
		got := 0
		if bundle != nil {
			got = len(bundle.Historical)
		}
		return nil, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientHistory, got, a.cfg.MinDataPoints)
	}

	res := &domain.ScoreResult{
		Symbol:  bundle.Symbol,
		Company: bundle.Profile.CompanyName,

		Momentum:           factors.MomentumScore(a.cfg, bundle.Historical),
		Volume:             factors.VolumeScore(a.cfg, bundle.Historical),
		Technical:          factors.TechnicalScore(a.cfg, bundle.Historical),
		Volatility:         factors.VolatilityScore(a.cfg, bundle.Historical),
		RelativeStrength:   factors.RelativeStrengthScore(a.cfg, bundle.Historical, bundle.Benchmark, bundle.SectorSeries),
		Catalyst:           factors.CatalystScore(a.cfg, bundle.News, bundle.Profile, a.now()),
		FundamentalQuality: factors.FundamentalQualityScore(a.cfg, bundle.Financials),
		ShortInterest:      factors.ShortInterestScore(a.cfg, bundle.ShortInterest),
		Growth:             factors.GrowthScore(a.cfg, bundle.Growth),
		Options:            factors.OptionsScore(bundle.Options),
	}

	w := a.cfg.Weights
	res.Composite = res.Momentum*w.Momentum +
		res.Volume*w.Volume +
		res.Technical*w.Technical +
		res.Volatility*w.Volatility +
		res.RelativeStrength*w.RelativeStrength +
		res.Catalyst*w.Catalyst +
		res.FundamentalQuality*w.FundamentalQuality +
		res.ShortInterest*w.ShortInterest +
		res.Growth*w.Growth

	res.Metrics = snapshotMetrics(bundle.Historical)

	return res, nil
}

// snapshotMetrics assembles the reporting snapshot. It performs no scoring.
func snapshotMetrics(bars []domain.PriceBar) domain.Metrics {
	closes := domain.Closes(bars)
	volumes := domain.Volumes(bars)

	m := domain.Metrics{
		CurrentPrice: closes[len(closes)-1],
		ROC5D:        indicators.ROC(closes, 5),
		ROC20D:       indicators.ROC(closes, 20),
		Volume:       volumes[len(volumes)-1],
	}
	if len(closes) > 1 {
		m.DailyChange = indicators.ROC(closes, 1)
	}
	if len(volumes) >= 20 {
		m.AvgVolume = indicators.SMA(volumes[len(volumes)-20:])
	} else {
		m.AvgVolume = indicators.SMA(volumes)
	}
	return m
}

package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
}

func makeBars(n int, start, step, volume float64) []domain.PriceBar {
	bars := make([]domain.PriceBar, n)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := start + step*float64(i)
		bars[i] = domain.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   c - step/2,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: volume,
		}
	}
	return bars
}

func testBundle(symbol string, bars []domain.PriceBar) *domain.Bundle {
	return &domain.Bundle{
		Symbol:     symbol,
		Historical: bars,
		Profile:    domain.Profile{CompanyName: symbol + " Corp"},
		Benchmark:  makeBars(250, 400, 0.1, 5e7),
	}
}

func TestAnalyze_InsufficientHistory(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)

	_, err := a.Analyze(testBundle("SHRT", makeBars(50, 100, 0.1, 1e6)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientHistory))

	_, err = a.Analyze(nil)
	assert.True(t, errors.Is(err, ErrInsufficientHistory))
}

func TestAnalyze_CompositeIsWeightedSum(t *testing.T) {
	cfg := config.Default()
	a := NewWithClock(cfg, fixedClock)

	res, err := a.Analyze(testBundle("ACME", makeBars(250, 50, 0.3, 2e6)))
	require.NoError(t, err)

	w := cfg.Weights
	want := res.Momentum*w.Momentum +
		res.Volume*w.Volume +
		res.Technical*w.Technical +
		res.Volatility*w.Volatility +
		res.RelativeStrength*w.RelativeStrength +
		res.Catalyst*w.Catalyst +
		res.FundamentalQuality*w.FundamentalQuality +
		res.ShortInterest*w.ShortInterest +
		res.Growth*w.Growth

	assert.InDelta(t, want, res.Composite, 1e-9)
	assert.GreaterOrEqual(t, res.Composite, 0.0)
	assert.LessOrEqual(t, res.Composite, 10.0)
}

func TestAnalyze_OptionsScoreExcludedFromComposite(t *testing.T) {
	cfg := config.Default()
	a := NewWithClock(cfg, fixedClock)

	plain := testBundle("ACME", makeBars(250, 50, 0.3, 2e6))
	withOptions := testBundle("ACME", makeBars(250, 50, 0.3, 2e6))
	withOptions.Options = &domain.OptionsSnapshot{
		PutCallRatio:    domain.FloatPtr(0.5),
		ATMImpliedVol:   domain.FloatPtr(30),
		TotalCallVolume: 9000,
		TotalPutVolume:  3000,
		NetDelta:        150,
	}

	a1, err := a.Analyze(plain)
	require.NoError(t, err)
	a2, err := a.Analyze(withOptions)
	require.NoError(t, err)

	assert.Equal(t, 0.0, a1.Options)
	assert.Equal(t, 10.0, a2.Options)
	assert.Equal(t, a1.Composite, a2.Composite)
}

func TestAnalyze_MissingOptionalDataIsNeutral(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)

	res, err := a.Analyze(testBundle("BARE", makeBars(250, 50, 0.3, 2e6)))
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.FundamentalQuality)
	assert.Equal(t, 5.0, res.ShortInterest)
	assert.Equal(t, 5.0, res.Growth)
	assert.Equal(t, 5.0, res.Catalyst)
	assert.Equal(t, 0.0, res.Options)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)
	bundle := testBundle("ACME", makeBars(250, 50, 0.3, 2e6))

	first, err := a.Analyze(bundle)
	require.NoError(t, err)
	second, err := a.Analyze(bundle)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_MetricsSnapshot(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)
	bars := makeBars(250, 100, 1, 3e6)

	res, err := a.Analyze(testBundle("ACME", bars))
	require.NoError(t, err)

	last := bars[len(bars)-1].Close
	prev := bars[len(bars)-2].Close

	assert.Equal(t, last, res.Metrics.CurrentPrice)
	assert.InDelta(t, (last-prev)/prev*100, res.Metrics.DailyChange, 1e-9)
	assert.Equal(t, 3e6, res.Metrics.Volume)
	assert.Equal(t, 3e6, res.Metrics.AvgVolume)
}

func TestAnalyzeBatch_IsolatesBadSymbols(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)

	bundles := []*domain.Bundle{
		testBundle("AAA", makeBars(250, 50, 0.3, 2e6)),
		{Symbol: "BAD"},
		testBundle("CCC", makeBars(250, 80, 0.2, 2e6)),
	}

	results := a.AnalyzeBatch(context.Background(), bundles, 2)
	require.Len(t, results, 2)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Composite, results[i].Composite)
	}
	symbols := []string{results[0].Symbol, results[1].Symbol}
	assert.ElementsMatch(t, []string{"AAA", "CCC"}, symbols)
}

func TestAnalyzeBatch_TiesBreakBySymbol(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)

	bars := makeBars(250, 50, 0.3, 2e6)
	bundles := []*domain.Bundle{
		testBundle("ZZZ", bars),
		testBundle("AAA", bars),
	}

	results := a.AnalyzeBatch(context.Background(), bundles, 2)
	require.Len(t, results, 2)
	assert.Equal(t, "AAA", results[0].Symbol)
	assert.Equal(t, "ZZZ", results[1].Symbol)
}

func TestAnalyzeBatch_EmptyInput(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)
	assert.Empty(t, a.AnalyzeBatch(context.Background(), nil, 4))
}

func TestAnalyzeBatch_CancelledContext(t *testing.T) {
	a := NewWithClock(config.Default(), fixedClock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bundles := []*domain.Bundle{
		testBundle("AAA", makeBars(250, 50, 0.3, 2e6)),
	}

	// A cancelled context stops feeding work; the call still returns.
	results := a.AnalyzeBatch(ctx, bundles, 1)
	assert.LessOrEqual(t, len(results), 1)
}

package factors

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
)

// makeBars builds n synthetic bars starting at start with a constant close
// step. Highs and lows bracket the close; volume is flat.
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

func TestMomentumScore_RisingBeatsFalling(t *testing.T) {
	cfg := config.Default()

	rising := MomentumScore(cfg, makeBars(250, 50, 0.5, 1e6))
	falling := MomentumScore(cfg, makeBars(250, 175, -0.5, 1e6))

	assert.Greater(t, rising, falling)
	assert.GreaterOrEqual(t, falling, 0.0)
	assert.LessOrEqual(t, rising, 10.0)
}

func TestVolumeScore_SpikeBeatsFlat(t *testing.T) {
	cfg := config.Default()

	flat := makeBars(250, 100, 0, 1e6)
	spiked := makeBars(250, 100, 0, 1e6)
	spiked[len(spiked)-1].Volume = 5e6

	assert.Greater(t, VolumeScore(cfg, spiked), VolumeScore(cfg, flat))
}

func TestFactorScoresStayInRange(t *testing.T) {
	cfg := config.Default()
	extreme := makeBars(250, 1, 4, 1e9)

	for name, score := range map[string]float64{
		"momentum":   MomentumScore(cfg, extreme),
		"volume":     VolumeScore(cfg, extreme),
		"technical":  TechnicalScore(cfg, extreme),
		"volatility": VolatilityScore(cfg, extreme),
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 10.0, name)
	}
}

func TestRelativeStrengthScore_Ordering(t *testing.T) {
	cfg := config.Default()
	benchmark := makeBars(60, 100, 0.05, 1e6)

	leader := RelativeStrengthScore(cfg, makeBars(60, 100, 2, 1e6), benchmark, nil)
	laggard := RelativeStrengthScore(cfg, makeBars(60, 220, -2, 1e6), benchmark, nil)

	assert.Greater(t, leader, laggard)
}

func TestRelativeStrengthScore_NoBenchmarkIsNeutral(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, Neutral, RelativeStrengthScore(cfg, makeBars(60, 100, 1, 1e6), nil, nil))
	assert.Equal(t, Neutral, RelativeStrengthScore(cfg, makeBars(3, 100, 1, 1e6), makeBars(60, 100, 0, 1e6), nil))
}

func TestCatalystScore_NoNewsIsNeutral(t *testing.T) {
	cfg := config.Default()
	asOf := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	got := CatalystScore(cfg, nil, domain.Profile{}, asOf)
	assert.Equal(t, 5.0, got)
}

func TestCatalystScore_EarningsWindowFloor(t *testing.T) {
	cfg := config.Default()
	asOf := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	news := []domain.NewsItem{{Title: "quarterly report scheduled"}}

	inWindow := CatalystScore(cfg, news, domain.Profile{NextEarningsDate: "2026-08-25"}, asOf)
	assert.Equal(t, 7.0, inWindow)

	outOfWindow := CatalystScore(cfg, news, domain.Profile{NextEarningsDate: "2026-09-25"}, asOf)
	assert.Equal(t, 5.0, outOfWindow)
}

func TestCatalystScore_UnparseableEarningsDateIgnored(t *testing.T) {
	cfg := config.Default()
	asOf := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	news := []domain.NewsItem{{Title: "quarterly report scheduled"}}

	got := CatalystScore(cfg, news, domain.Profile{NextEarningsDate: "soon"}, asOf)
	assert.Equal(t, 5.0, got)
}

func TestCatalystScore_MajorPositiveBonus(t *testing.T) {
	cfg := config.Default()
	asOf := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	news := []domain.NewsItem{{Title: "company wins fda approval"}}

	// Neutral sentiment 50 plus the headline bonus of 15.
	assert.Equal(t, 6.5, CatalystScore(cfg, news, domain.Profile{}, asOf))
}

func TestCatalystScore_MajorNegativeCap(t *testing.T) {
	cfg := config.Default()
	asOf := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	news := []domain.NewsItem{
		{Title: "record growth and surge in demand"},
		{Title: "company announces guidance cut"},
	}

	// Sentiment averages to 50, then the guidance-cut headline caps it.
	assert.Equal(t, 3.0, CatalystScore(cfg, news, domain.Profile{}, asOf))
}

func TestCatalystScore_BonusRespects100Cap(t *testing.T) {
	cfg := config.Default()
	asOf := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	news := []domain.NewsItem{
		{Title: "record strong growth beat, strategic partnership announced"},
	}

	got := CatalystScore(cfg, news, domain.Profile{}, asOf)
	assert.LessOrEqual(t, got, 10.0)
	assert.Greater(t, got, 9.0)
}

func TestNilOptionalBundlesAreNeutral(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 5.0, FundamentalQualityScore(cfg, nil))
	assert.Equal(t, 5.0, ShortInterestScore(cfg, nil))
	assert.Equal(t, 5.0, GrowthScore(cfg, nil))
}

func TestEmptyJSONObjectsAreNeutral(t *testing.T) {
	cfg := config.Default()

	// Providers sometimes send an empty object instead of omitting the
	// key. Decoded, that is a non-nil snapshot with every field nil; it
	// must score exactly like an absent one.
	var bundle domain.Bundle
	payload := []byte(`{"symbol": "ACME", "financials": {}, "short_interest": {}, "growth_metrics": {}}`)
	require.NoError(t, json.Unmarshal(payload, &bundle))

	require.NotNil(t, bundle.Financials)
	require.NotNil(t, bundle.ShortInterest)
	require.NotNil(t, bundle.Growth)

	assert.Equal(t, 5.0, FundamentalQualityScore(cfg, bundle.Financials))
	assert.Equal(t, 5.0, ShortInterestScore(cfg, bundle.ShortInterest))
	assert.Equal(t, 5.0, GrowthScore(cfg, bundle.Growth))
}

func TestPartialSnapshotsStillScore(t *testing.T) {
	cfg := config.Default()

	// One populated field is real data; per-field defaults fill the rest.
	partial := FundamentalQualityScore(cfg, &domain.FinancialSnapshot{
		ROIC: domain.FloatPtr(35),
	})
	assert.NotEqual(t, 5.0, partial)
}

func TestFundamentalQualityScore_StrongVsWeak(t *testing.T) {
	cfg := config.Default()

	strong := FundamentalQualityScore(cfg, &domain.FinancialSnapshot{
		ROIC:         domain.FloatPtr(35),
		FCFYield:     domain.FloatPtr(10),
		DebtToEquity: domain.FloatPtr(0.1),
		EPSStability: domain.FloatPtr(5),
	})
	weak := FundamentalQualityScore(cfg, &domain.FinancialSnapshot{
		ROIC:         domain.FloatPtr(-10),
		FCFYield:     domain.FloatPtr(-5),
		DebtToEquity: domain.FloatPtr(4),
		EPSStability: domain.FloatPtr(90),
	})

	assert.Greater(t, strong, weak)
	assert.LessOrEqual(t, strong, 10.0)
	assert.GreaterOrEqual(t, weak, 0.0)
}

func TestShortInterestScore_LowPressureScoresHigher(t *testing.T) {
	cfg := config.Default()

	clean := ShortInterestScore(cfg, &domain.ShortInterestSnapshot{
		DaysToCover:       domain.FloatPtr(0.5),
		ShortFloatPercent: domain.FloatPtr(1),
		ShortChange1M:     domain.FloatPtr(-20),
	})
	crowded := ShortInterestScore(cfg, &domain.ShortInterestSnapshot{
		DaysToCover:       domain.FloatPtr(12),
		ShortFloatPercent: domain.FloatPtr(35),
		ShortChange1M:     domain.FloatPtr(40),
	})

	assert.Greater(t, clean, crowded)
}

func TestOptionsScore_NilIsZero(t *testing.T) {
	assert.Equal(t, 0.0, OptionsScore(nil))
}

func TestOptionsScore_FullBullishChain(t *testing.T) {
	opt := &domain.OptionsSnapshot{
		PutCallRatio:    domain.FloatPtr(0.5),
		ATMImpliedVol:   domain.FloatPtr(30),
		TotalCallVolume: 9000,
		TotalPutVolume:  3000,
		NetDelta:        150,
	}

	// 4 (p/c) + 3 (IV band) + 2 (volume) + 1 (delta) = 10.
	assert.Equal(t, 10.0, OptionsScore(opt))
}

func TestOptionsScore_FractionalIVNormalized(t *testing.T) {
	pct := OptionsScore(&domain.OptionsSnapshot{ATMImpliedVol: domain.FloatPtr(30)})
	frac := OptionsScore(&domain.OptionsSnapshot{ATMImpliedVol: domain.FloatPtr(0.30)})

	assert.Equal(t, pct, frac)
}

func TestOptionsScore_MidTiers(t *testing.T) {
	opt := &domain.OptionsSnapshot{
		PutCallRatio:    domain.FloatPtr(1.1),
		ATMImpliedVol:   domain.FloatPtr(70),
		TotalCallVolume: 400,
		TotalPutVolume:  200,
		NetDelta:        -50,
	}

	// 1.5 + 0.5 + 0.5 + 0.3
	assert.InDelta(t, 2.8, OptionsScore(opt), 1e-9)
}

func TestClipScore(t *testing.T) {
	require.Equal(t, 0.0, clipScore(-20))
	require.Equal(t, 10.0, clipScore(150))
	require.Equal(t, 5.0, clipScore(50))
}

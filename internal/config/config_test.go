package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum33/stock-analysis-system/internal/percentile"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-9)
	assert.Equal(t, 200, cfg.MinDataPoints)
}

func TestValidate_RejectsBrokenCompositeWeights(t *testing.T) {
	cfg := Default()
	cfg.Weights.Momentum = 0.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "composite weights")
}

func TestValidate_RejectsBrokenSubWeights(t *testing.T) {
	cfg := Default()
	cfg.Volume.Weights.RelVol = 0.9

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume weights")
}

func TestValidate_RejectsShortLadder(t *testing.T) {
	cfg := Default()
	cfg.Momentum.ROC5Ladder = percentile.Ladder{1}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roc_5_refs")
}

func TestValidate_RejectsUnsortedLadder(t *testing.T) {
	cfg := Default()
	cfg.Growth.CAGRLadder = percentile.Ladder{10, 5, 20, 30}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ascending")
}

func TestValidate_RejectsNonPositiveMinDataPoints(t *testing.T) {
	cfg := Default()
	cfg.MinDataPoints = 0

	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsEmptyLexicon(t *testing.T) {
	cfg := Default()
	cfg.Catalyst.Keywords.Positive = nil

	assert.Error(t, cfg.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := []byte(`
min_data_points: 120
weights:
  momentum_score: 0.25
  volume_score: 0.12
  technical_score: 0.13
  volatility_score: 0.08
  relative_strength_score: 0.12
  catalyst_score: 0.10
  fundamental_quality_score: 0.10
  short_interest_score: 0.05
  growth_score: 0.05
screener:
  min_price: 5.0
`)
	require.NoError(t, os.WriteFile(path, overlay, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.MinDataPoints)
	assert.Equal(t, 0.25, cfg.Weights.Momentum)
	assert.Equal(t, 5.0, cfg.Screener.MinPrice)

	// Untouched sections keep their defaults.
	assert.Equal(t, 3, cfg.Catalyst.EarningsWindowDays)
	assert.NotEmpty(t, cfg.SectorETFs)
}

func TestLoad_RejectsInvalidOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_data_points: -5\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

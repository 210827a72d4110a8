// Package screener applies the cheap pre-analysis filters so the full
// pipeline only runs on symbols that could plausibly rank: price band,
// liquidity floor, and minimum bar count.
package screener

import (
	"github.com/rs/zerolog/log"

	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/indicators"
)

// Screener filters symbol bundles before analysis.
type Screener struct {
	cfg *config.Config
}

// New creates a screener bound to the shared configuration.
func New(cfg *config.Config) *Screener {
	return &Screener{cfg: cfg}
}

// Passes reports whether a bundle clears every filter.
func (s *Screener) Passes(bundle *domain.Bundle) bool {
	if bundle == nil || len(bundle.Historical) < s.cfg.MinDataPoints {
		return false
	}

	closes := domain.Closes(bundle.Historical)
	price := closes[len(closes)-1]
	if price < s.cfg.Screener.MinPrice || price > s.cfg.Screener.MaxPrice {
		return false
	}

	volumes := domain.Volumes(bundle.Historical)
	window := volumes
	if len(volumes) > 20 {
		window = volumes[len(volumes)-20:]
	}
	return indicators.SMA(window) >= s.cfg.Screener.MinAvgVolume
}

// Filter returns the bundles that pass, preserving input order.
func (s *Screener) Filter(bundles []*domain.Bundle) []*domain.Bundle {
	out := make([]*domain.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if s.Passes(b) {
			out = append(out, b)
			continue
		}
		symbol := ""
		if b != nil {
			symbol = b.Symbol
		}
		log.Debug().Str("symbol", symbol).Msg("screened out")
	}
	return out
}

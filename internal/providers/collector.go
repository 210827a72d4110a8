package providers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/momentum33/stock-analysis-system/internal/cache"
	"github.com/momentum33/stock-analysis-system/internal/config"
	"github.com/momentum33/stock-analysis-system/internal/domain"
)

// benchmarkSymbol is the market index used for the benchmark leg of
// relative strength.
const benchmarkSymbol = "SPY"

// newsLimit bounds how many recent articles feed the catalyst factor.
const newsLimit = 25

// Collector assembles complete per-symbol bundles from the provider
// clients, sharing the benchmark series across a batch and caching price
// history. Options and fundamentals are best effort: a fetch failure
// leaves the optional field nil and the engine degrades to neutral.
type Collector struct {
	cfg     *config.Config
	fmp     *FMPClient
	polygon *PolygonClient
	cache   *cache.Cache
	days    int
}

// NewCollector wires the provider clients together. polygon and c may be
// nil; options data and caching are then skipped.
func NewCollector(cfg *config.Config, fmp *FMPClient, polygon *PolygonClient, c *cache.Cache, days int) *Collector {
	if days <= 0 {
		days = 250
	}
	return &Collector{cfg: cfg, fmp: fmp, polygon: polygon, cache: c, days: days}
}

// history fetches bars through the cache.
func (c *Collector) history(ctx context.Context, symbol string) ([]domain.PriceBar, error) {
	if bars, ok := c.cache.GetBars(ctx, symbol); ok {
		return bars, nil
	}
	bars, err := c.fmp.History(ctx, symbol, c.days)
	if err != nil {
		return nil, err
	}
	c.cache.SetBars(ctx, symbol, bars)
	return bars, nil
}

// Collect builds the bundle for one symbol.
func (c *Collector) Collect(ctx context.Context, symbol string) (*domain.Bundle, error) {
	bars, err := c.history(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}

	profile, err := c.fmp.Profile(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("profile fetch failed")
	}

	bundle := &domain.Bundle{
		Symbol:     symbol,
		Historical: bars,
		Profile:    profile,
	}

	if bundle.Benchmark, err = c.history(ctx, benchmarkSymbol); err != nil {
		log.Warn().Err(err).Msg("benchmark fetch failed")
	}
	if etf, ok := c.cfg.SectorETFs[profile.Sector]; ok {
		if bundle.SectorSeries, err = c.history(ctx, etf); err != nil {
			log.Warn().Err(err).Str("etf", etf).Msg("sector fetch failed")
		}
	}

	if bundle.News, err = c.fmp.News(ctx, symbol, newsLimit); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("news fetch failed")
	}
	if bundle.Financials, err = c.fmp.Financials(ctx, symbol); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("financials fetch failed")
	}
	if bundle.ShortInterest, err = c.fmp.ShortInterest(ctx, symbol); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("short interest fetch failed")
	}
	if bundle.Growth, err = c.fmp.Growth(ctx, symbol); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("growth fetch failed")
	}
	if c.polygon != nil {
		if bundle.Options, err = c.polygon.Options(ctx, symbol); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("options fetch failed")
		}
	}

	return bundle, nil
}

// CollectAll builds bundles for a list of symbols, skipping symbols whose
// required data cannot be fetched.
func (c *Collector) CollectAll(ctx context.Context, symbols []string) []*domain.Bundle {
	out := make([]*domain.Bundle, 0, len(symbols))
	for _, s := range symbols {
		bundle, err := c.Collect(ctx, s)
		if err != nil {
			log.Warn().Err(err).Str("symbol", s).Msg("bundle collection failed")
			continue
		}
		out = append(out, bundle)
	}
	return out
}

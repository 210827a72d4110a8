package analyzer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/telemetry"
)

// defaultWorkers bounds the per-symbol fan-out when the caller does not.
const defaultWorkers = 8

// AnalyzeBatch scores a collection of symbols across a bounded worker pool
// and returns the survivors sorted by composite score descending. Failures
// stay isolated: a symbol that errors or panics is logged and dropped, and
// the batch always completes. Workers only read their own bundle and the
// shared read-only configuration.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, bundles []*domain.Bundle, workers int) []*domain.ScoreResult {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(bundles) {
		workers = len(bundles)
	}

	start := time.Now()
	results := make([]*domain.ScoreResult, len(bundles))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = a.analyzeIsolated(bundles[idx])
			}
		}()
	}

feed:
	for i := range bundles {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	ranked := make([]*domain.ScoreResult, 0, len(bundles))
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})

	telemetry.BatchDuration.Observe(time.Since(start).Seconds())
	log.Info().
		Int("symbols", len(bundles)).
		Int("ranked", len(ranked)).
		Dur("elapsed", time.Since(start)).
		Msg("batch analysis complete")

	return ranked
}

// analyzeIsolated runs one analysis and converts any error or panic into a
// dropped symbol.
func (a *Analyzer) analyzeIsolated(bundle *domain.Bundle) (res *domain.ScoreResult) {
	symbol := ""
	if bundle != nil {
		symbol = bundle.Symbol
	}

	defer func() {
		if r := recover(); r != nil {
			telemetry.AnalysisFailures.Inc()
			log.Error().Interface("panic", r).Str("symbol", symbol).Msg("analysis panicked")
			res = nil
		}
	}()

	out, err := a.Analyze(bundle)
	if err != nil {
		telemetry.AnalysisFailures.Inc()
		if errors.Is(err, ErrInsufficientHistory) {
			log.Debug().Err(err).Str("symbol", symbol).Msg("symbol skipped")
		} else {
			log.Warn().Err(err).Str("symbol", symbol).Msg("analysis failed")
		}
		return nil
	}

	telemetry.SymbolsScored.Inc()
	return out
}

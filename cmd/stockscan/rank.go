package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/momentum33/stock-analysis-system/internal/analyzer"
	"github.com/momentum33/stock-analysis-system/internal/cache"
	"github.com/momentum33/stock-analysis-system/internal/domain"
	"github.com/momentum33/stock-analysis-system/internal/providers"
	"github.com/momentum33/stock-analysis-system/internal/report"
	"github.com/momentum33/stock-analysis-system/internal/screener"
	"github.com/momentum33/stock-analysis-system/internal/store"
)

func rankCmd() *cobra.Command {
	var (
		input      string
		symbols    string
		fmpURL     string
		fmpKey     string
		polygonURL string
		polygonKey string
		redisAddr  string
		pgDSN      string
		csvOut     string
		topN       int
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and rank symbols by composite score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var bundles []*domain.Bundle
			switch {
			case input != "":
				bundles, err = readBundles(input)
				if err != nil {
					return err
				}
			case symbols != "":
				if fmpKey == "" {
					return fmt.Errorf("--fmp-key is required when fetching by symbol")
				}
				var c *cache.Cache
				if redisAddr != "" {
					if c, err = cache.New(ctx, redisAddr, 15*time.Minute); err != nil {
						log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
					} else {
						defer c.Close()
					}
				}
				fmp := providers.NewFMPClient(fmpURL, fmpKey, log.Logger)
				var poly *providers.PolygonClient
				if polygonKey != "" {
					poly = providers.NewPolygonClient(polygonURL, polygonKey, log.Logger)
				}
				collector := providers.NewCollector(cfg, fmp, poly, c, 250)
				bundles = collector.CollectAll(ctx, splitSymbols(symbols))
			default:
				return fmt.Errorf("either --input or --symbols is required")
			}

			requested := len(bundles)
			bundles = screener.New(cfg).Filter(bundles)

			started := time.Now()
			results := analyzer.New(cfg).AnalyzeBatch(ctx, bundles, workers)

			if pgDSN != "" {
				st, err := store.Open(ctx, pgDSN)
				if err != nil {
					return fmt.Errorf("open store: %w", err)
				}
				defer st.Close()
				runID, err := st.SaveRun(ctx, started, requested, results)
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				log.Info().Str("run_id", runID.String()).Msg("run persisted")
			}

			if csvOut != "" {
				f, err := os.Create(csvOut)
				if err != nil {
					return fmt.Errorf("create %s: %w", csvOut, err)
				}
				defer f.Close()
				if err := report.WriteCSV(f, results); err != nil {
					return err
				}
				log.Info().Str("path", csvOut).Msg("csv report written")
			}

			return report.WriteText(cmd.OutOrStdout(), results, topN)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSON file of pre-assembled symbol bundles")
	cmd.Flags().StringVar(&symbols, "symbols", "", "comma-separated symbols to fetch and score")
	cmd.Flags().StringVar(&fmpURL, "fmp-url", "https://financialmodelingprep.com", "FMP API base URL")
	cmd.Flags().StringVar(&fmpKey, "fmp-key", os.Getenv("FMP_API_KEY"), "FMP API key")
	cmd.Flags().StringVar(&polygonURL, "polygon-url", "https://api.polygon.io", "Polygon API base URL")
	cmd.Flags().StringVar(&polygonKey, "polygon-key", os.Getenv("POLYGON_API_KEY"), "Polygon API key (options data)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the quote cache")
	cmd.Flags().StringVar(&pgDSN, "postgres", "", "Postgres DSN to persist the run")
	cmd.Flags().StringVar(&csvOut, "csv", "", "write full ranking to this CSV file")
	cmd.Flags().IntVar(&topN, "top", 10, "rows in the text summary")
	cmd.Flags().IntVar(&workers, "workers", 8, "parallel analysis workers")

	return cmd
}

func readBundles(path string) ([]*domain.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundles %s: %w", path, err)
	}
	var bundles []*domain.Bundle
	if err := json.Unmarshal(data, &bundles); err != nil {
		return nil, fmt.Errorf("parse bundles %s: %w", path, err)
	}
	return bundles, nil
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentum33/stock-analysis-system/internal/config"
)

// Execute wires up the command tree and runs it.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "stockscan",
		Short: "Multi-factor equity scoring for short-horizon trading",
		Long: "stockscan ranks equities by a weighted composite of momentum, volume,\n" +
			"technical, volatility, relative strength, catalyst, quality, short\n" +
			"interest, and growth factors.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "path to YAML config (defaults used when empty)")

	root.AddCommand(rankCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(validateCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the --config flag into a validated configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("default config invalid: %w", err)
		}
		return cfg, nil
	}
	return config.Load(path)
}

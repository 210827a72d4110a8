package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration weights, ladders, and lexicons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"config ok: composite weights sum %.3f, min bars %d\n",
				cfg.Weights.Sum(), cfg.MinDataPoints)
			return nil
		},
	}
}

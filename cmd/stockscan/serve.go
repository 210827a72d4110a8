package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentum33/stock-analysis-system/internal/analyzer"
	"github.com/momentum33/stock-analysis-system/internal/httpapi"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ranking engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			srv := httpapi.New(analyzer.New(cfg), addr, workers)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&workers, "workers", 8, "parallel analysis workers per request")

	return cmd
}

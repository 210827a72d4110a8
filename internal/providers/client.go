// Package providers holds the upstream market-data clients. These are the
// engine's external collaborators: they fetch price history, fundamentals,
// news, short interest, and options snapshots, and assemble the per-symbol
// bundles the analyzer consumes. Each client is rate limited and wrapped
// in a circuit breaker so one misbehaving provider cannot stall a scan.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/momentum33/stock-analysis-system/internal/telemetry"
)

// httpClient is the shared transport for provider APIs.
type httpClient struct {
	name    string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

func newHTTPClient(name string, rps float64, burst int, logger zerolog.Logger) *httpClient {
	return &httpClient{
		name:    name,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		log: logger.With().Str("provider", name).Logger(),
	}
}

// getJSON performs a rate-limited GET through the breaker and decodes the
// response body into out.
func (c *httpClient) getJSON(ctx context.Context, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request: %w", c.name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("%s returned status %d", c.name, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", c.name, err)
		}
		return nil, nil
	})

	status := "ok"
	if err != nil {
		status = "error"
		c.log.Warn().Err(err).Msg("provider request failed")
	}
	telemetry.ProviderRequests.WithLabelValues(c.name, status).Inc()

	return err
}

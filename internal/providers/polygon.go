package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/momentum33/stock-analysis-system/internal/domain"
)

// PolygonClient fetches the options-chain summary from a Polygon
// compatible API. Options data is optional throughout the engine; a symbol
// without a chain simply scores 0 on the options factor.
type PolygonClient struct {
	http    *httpClient
	baseURL string
	apiKey  string
}

// NewPolygonClient creates a client against the given base URL.
func NewPolygonClient(baseURL, apiKey string, logger zerolog.Logger) *PolygonClient {
	return &PolygonClient{
		http:    newHTTPClient("polygon", 50, 100, logger),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type polygonChainResult struct {
	Details struct {
		ContractType string `json:"contract_type"`
	} `json:"details"`
	Day struct {
		Volume float64 `json:"volume"`
	} `json:"day"`
	Greeks struct {
		Delta float64 `json:"delta"`
	} `json:"greeks"`
	ImpliedVolatility float64 `json:"implied_volatility"`
}

type polygonChainResponse struct {
	Results []polygonChainResult `json:"results"`
}

// Options aggregates the chain into the snapshot the options factor
// consumes: put/call ratio, mean IV, total volumes, and net delta. An
// empty chain returns nil.
func (c *PolygonClient) Options(ctx context.Context, symbol string) (*domain.OptionsSnapshot, error) {
	var resp polygonChainResponse
	u := fmt.Sprintf("%s/v3/snapshot/options/%s?limit=250&apiKey=%s",
		c.baseURL, url.PathEscape(symbol), c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("options %s: %w", symbol, err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	var callVol, putVol, netDelta, ivSum float64
	var ivCount int
	for _, r := range resp.Results {
		switch r.Details.ContractType {
		case "call":
			callVol += r.Day.Volume
			netDelta += r.Greeks.Delta * r.Day.Volume
		case "put":
			putVol += r.Day.Volume
			netDelta += r.Greeks.Delta * r.Day.Volume
		default:
			continue
		}
		if r.ImpliedVolatility > 0 {
			ivSum += r.ImpliedVolatility
			ivCount++
		}
	}

	snap := &domain.OptionsSnapshot{
		TotalCallVolume: callVol,
		TotalPutVolume:  putVol,
		NetDelta:        netDelta,
	}
	if callVol > 0 {
		snap.PutCallRatio = domain.FloatPtr(putVol / callVol)
	}
	if ivCount > 0 {
		snap.ATMImpliedVol = domain.FloatPtr(ivSum / float64(ivCount))
	}
	return snap, nil
}

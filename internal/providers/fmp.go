package providers

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentum33/stock-analysis-system/internal/domain"
)

// FMPClient fetches price history, profiles, news, and fundamentals from a
// Financial Modeling Prep compatible API.
type FMPClient struct {
	http    *httpClient
	baseURL string
	apiKey  string
}

// NewFMPClient creates a client against the given base URL (the real API
// or a test server).
func NewFMPClient(baseURL, apiKey string, logger zerolog.Logger) *FMPClient {
	return &FMPClient{
		http:    newHTTPClient("fmp", 5, 10, logger),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type fmpBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type fmpHistoryResponse struct {
	Symbol     string   `json:"symbol"`
	Historical []fmpBar `json:"historical"`
}

// History fetches up to days of daily bars, oldest first.
func (c *FMPClient) History(ctx context.Context, symbol string, days int) ([]domain.PriceBar, error) {
	var resp fmpHistoryResponse
	u := fmt.Sprintf("%s/api/v3/historical-price-full/%s?timeseries=%d&apikey=%s",
		c.baseURL, url.PathEscape(symbol), days, c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("history %s: %w", symbol, err)
	}

	bars := make([]domain.PriceBar, 0, len(resp.Historical))
	for _, b := range resp.Historical {
		date, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			continue
		}
		bars = append(bars, domain.PriceBar{
			Date: date, Open: b.Open, High: b.High, Low: b.Low,
			Close: b.Close, Volume: b.Volume,
		})
	}

	// FMP returns newest first; the engine wants chronological order.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// Profile fetches company reference data.
func (c *FMPClient) Profile(ctx context.Context, symbol string) (domain.Profile, error) {
	var resp []domain.Profile
	u := fmt.Sprintf("%s/api/v3/profile/%s?apikey=%s", c.baseURL, url.PathEscape(symbol), c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return domain.Profile{}, fmt.Errorf("profile %s: %w", symbol, err)
	}
	if len(resp) == 0 {
		return domain.Profile{}, nil
	}
	return resp[0], nil
}

type fmpNewsItem struct {
	Title         string `json:"title"`
	Text          string `json:"text"`
	PublishedDate string `json:"publishedDate"`
}

// News fetches the most recent articles for the symbol.
func (c *FMPClient) News(ctx context.Context, symbol string, limit int) ([]domain.NewsItem, error) {
	var resp []fmpNewsItem
	u := fmt.Sprintf("%s/api/v3/stock_news?tickers=%s&limit=%d&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), limit, c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("news %s: %w", symbol, err)
	}

	items := make([]domain.NewsItem, 0, len(resp))
	for _, n := range resp {
		item := domain.NewsItem{Title: n.Title, Text: n.Text}
		if ts, err := time.Parse("2006-01-02 15:04:05", n.PublishedDate); err == nil {
			item.PublishedDate = ts
		}
		items = append(items, item)
	}
	return items, nil
}

// Financials fetches the quality ratio snapshot; a symbol without
// fundamental coverage yields nil, which scores neutral downstream.
func (c *FMPClient) Financials(ctx context.Context, symbol string) (*domain.FinancialSnapshot, error) {
	var resp []domain.FinancialSnapshot
	u := fmt.Sprintf("%s/api/v3/ratios-ttm/%s?apikey=%s", c.baseURL, url.PathEscape(symbol), c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("financials %s: %w", symbol, err)
	}
	if len(resp) == 0 {
		return nil, nil
	}
	return &resp[0], nil
}

// ShortInterest fetches the short-interest snapshot, nil when uncovered.
func (c *FMPClient) ShortInterest(ctx context.Context, symbol string) (*domain.ShortInterestSnapshot, error) {
	var resp []domain.ShortInterestSnapshot
	u := fmt.Sprintf("%s/api/v4/short-interest?symbol=%s&apikey=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("short interest %s: %w", symbol, err)
	}
	if len(resp) == 0 {
		return nil, nil
	}
	return &resp[0], nil
}

// Growth fetches the growth metric snapshot, nil when uncovered.
func (c *FMPClient) Growth(ctx context.Context, symbol string) (*domain.GrowthMetrics, error) {
	var resp []domain.GrowthMetrics
	u := fmt.Sprintf("%s/api/v3/financial-growth/%s?limit=1&apikey=%s", c.baseURL, url.PathEscape(symbol), c.apiKey)
	if err := c.http.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("growth %s: %w", symbol, err)
	}
	if len(resp) == 0 {
		return nil, nil
	}
	return &resp[0], nil
}

package domain

import "time"

// PriceBar represents one OHLCV bar. Bars are ordered chronologically,
// oldest first.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Profile holds company reference data. NextEarningsDate is kept as the
// raw provider string; an unparseable date is treated as far future.
type Profile struct {
	CompanyName      string `json:"companyName,omitempty"`
	Sector           string `json:"sector,omitempty"`
	NextEarningsDate string `json:"next_earnings_date,omitempty"`
}

// NewsItem is a single article. Sentiment is derived from the text via the
// configured lexicons, nothing is stored on the item itself.
type NewsItem struct {
	Title         string    `json:"title,omitempty"`
	Text          string    `json:"text,omitempty"`
	PublishedDate time.Time `json:"publishedDate,omitempty"`
}

// FinancialSnapshot holds point-in-time quality ratios. Fields are pointers
// because providers frequently omit individual metrics.
type FinancialSnapshot struct {
	ROIC         *float64 `json:"roic,omitempty"`
	FCFYield     *float64 `json:"fcf_yield,omitempty"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	EPSStability *float64 `json:"eps_stability,omitempty"`
}

// IsEmpty reports whether every field is absent. Providers and upstream
// JSON payloads sometimes send an empty object instead of omitting the
// key; both read as missing data.
func (f *FinancialSnapshot) IsEmpty() bool {
	return f.ROIC == nil && f.FCFYield == nil && f.DebtToEquity == nil && f.EPSStability == nil
}

// ShortInterestSnapshot holds short pressure metrics.
type ShortInterestSnapshot struct {
	DaysToCover       *float64 `json:"days_to_cover,omitempty"`
	ShortFloatPercent *float64 `json:"short_float_percent,omitempty"`
	ShortChange1M     *float64 `json:"short_change_1m,omitempty"`
}

// IsEmpty reports whether every field is absent.
func (s *ShortInterestSnapshot) IsEmpty() bool {
	return s.DaysToCover == nil && s.ShortFloatPercent == nil && s.ShortChange1M == nil
}

// GrowthMetrics holds top-line and bottom-line growth rates in percent.
type GrowthMetrics struct {
	RevenueGrowth1Y *float64 `json:"revenue_growth_1y,omitempty"`
	EPSGrowth1Y     *float64 `json:"eps_growth_1y,omitempty"`
	CAGR5Y          *float64 `json:"cagr_5y,omitempty"`
}

// IsEmpty reports whether every field is absent.
func (g *GrowthMetrics) IsEmpty() bool {
	return g.RevenueGrowth1Y == nil && g.EPSGrowth1Y == nil && g.CAGR5Y == nil
}

// OptionsSnapshot summarizes the options chain for one underlying.
type OptionsSnapshot struct {
	PutCallRatio    *float64 `json:"put_call_ratio,omitempty"`
	ATMImpliedVol   *float64 `json:"atm_implied_volatility,omitempty"`
	TotalCallVolume float64  `json:"total_call_volume,omitempty"`
	TotalPutVolume  float64  `json:"total_put_volume,omitempty"`
	NetDelta        float64  `json:"net_delta,omitempty"`
}

// Bundle is the complete per-symbol input consumed by the scoring engine.
// Historical and Benchmark are required for a full analysis; everything
// else degrades to a neutral contribution when absent.
type Bundle struct {
	Symbol        string                 `json:"symbol"`
	Historical    []PriceBar             `json:"historical"`
	Profile       Profile                `json:"profile"`
	News          []NewsItem             `json:"news,omitempty"`
	Benchmark     []PriceBar             `json:"spy_data,omitempty"`
	SectorSeries  []PriceBar             `json:"sector_data,omitempty"`
	Financials    *FinancialSnapshot     `json:"financials,omitempty"`
	ShortInterest *ShortInterestSnapshot `json:"short_interest,omitempty"`
	Growth        *GrowthMetrics         `json:"growth_metrics,omitempty"`
	Options       *OptionsSnapshot       `json:"options_analysis,omitempty"`
}

// Metrics is the reporting snapshot attached to every score result. It
// carries no scoring logic of its own.
type Metrics struct {
	CurrentPrice float64 `json:"current_price"`
	DailyChange  float64 `json:"daily_change"`
	ROC5D        float64 `json:"roc_5d"`
	ROC20D       float64 `json:"roc_20d"`
	Volume       float64 `json:"volume"`
	AvgVolume    float64 `json:"avg_volume"`
}

// ScoreResult holds the nine weighted sub-scores, the auxiliary options
// score, and the composite, all on a 0-10 scale. Results are created fresh
// per analysis and never mutated after return.
type ScoreResult struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`

	Momentum           float64 `json:"momentum_score"`
	Volume             float64 `json:"volume_score"`
	Technical          float64 `json:"technical_score"`
	Volatility         float64 `json:"volatility_score"`
	RelativeStrength   float64 `json:"relative_strength_score"`
	Catalyst           float64 `json:"catalyst_score"`
	FundamentalQuality float64 `json:"fundamental_quality_score"`
	ShortInterest      float64 `json:"short_interest_score"`
	Growth             float64 `json:"growth_score"`
	Options            float64 `json:"options_score"`

	Composite float64 `json:"composite_score"`
	Metrics   Metrics `json:"metrics"`
}

// Closes extracts the close series from a bar slice.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high series from a bar slice.
func Highs(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low series from a bar slice.
func Lows(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume series from a bar slice.
func Volumes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

// Float returns the pointed-to value or def when p is nil.
func Float(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// FloatPtr is a convenience constructor for optional metric fields.
func FloatPtr(v float64) *float64 { return &v }

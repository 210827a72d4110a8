// Package report renders ranked results as CSV for spreadsheets and as a
// plain-text summary for the terminal.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/momentum33/stock-analysis-system/internal/domain"
)

var csvHeader = []string{
	"rank", "symbol", "company", "composite",
	"momentum", "volume", "technical", "volatility", "rel_strength",
	"catalyst", "quality", "short_interest", "growth", "options",
	"price", "roc_5d", "roc_20d",
}

// WriteCSV writes the full ranking as CSV.
func WriteCSV(w io.Writer, results []*domain.ScoreResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			r.Symbol,
			r.Company,
			f(r.Composite),
			f(r.Momentum), f(r.Volume), f(r.Technical), f(r.Volatility), f(r.RelativeStrength),
			f(r.Catalyst), f(r.FundamentalQuality), f(r.ShortInterest), f(r.Growth), f(r.Options),
			f(r.Metrics.CurrentPrice), f(r.Metrics.ROC5D), f(r.Metrics.ROC20D),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Symbol, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteText writes a top-N table for terminal output.
func WriteText(w io.Writer, results []*domain.ScoreResult, topN int) error {
	if topN <= 0 || topN > len(results) {
		topN = len(results)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSYMBOL\tCOMPOSITE\tMOMENTUM\tTECHNICAL\tCATALYST\tPRICE\t5D%")
	for i, r := range results[:topN] {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%+.2f\n",
			i+1, r.Symbol, r.Composite, r.Momentum, r.Technical, r.Catalyst,
			r.Metrics.CurrentPrice, r.Metrics.ROC5D)
	}
	return tw.Flush()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

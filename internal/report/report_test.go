package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum33/stock-analysis-system/internal/domain"
)

func sampleResults() []*domain.ScoreResult {
	return []*domain.ScoreResult{
		{
			Symbol:    "AAA",
			Company:   "Alpha Corp",
			Momentum:  8.1,
			Technical: 7.2,
			Catalyst:  6.5,
			Composite: 7.45,
			Metrics:   domain.Metrics{CurrentPrice: 52.30, ROC5D: 3.4, ROC20D: 9.1},
		},
		{
			Symbol:    "BBB",
			Company:   "Beta, Inc",
			Momentum:  4.0,
			Technical: 5.1,
			Catalyst:  5.0,
			Composite: 4.90,
			Metrics:   domain.Metrics{CurrentPrice: 12.75, ROC5D: -1.2, ROC20D: 0.5},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "AAA", rows[1][1])
	assert.Equal(t, "7.45", rows[1][3])
	// Commas in company names survive the round trip.
	assert.Equal(t, "Beta, Inc", rows[2][2])
}

func TestWriteCSV_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteText_TopN(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResults(), 1))

	out := buf.String()
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "AAA")
	assert.NotContains(t, out, "BBB")
	assert.Contains(t, out, "+3.40")
}

func TestWriteText_ZeroTopNMeansAll(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResults(), 0))

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 3, lines)
}

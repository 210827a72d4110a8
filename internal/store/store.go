// Package store persists analysis runs to Postgres so past rankings can be
// reviewed and compared. A run is one batch invocation; each surviving
// symbol becomes a score row under that run.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/momentum33/stock-analysis-system/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
    id         UUID PRIMARY KEY,
    started_at TIMESTAMPTZ NOT NULL,
    symbols    INT NOT NULL,
    ranked     INT NOT NULL
);

CREATE TABLE IF NOT EXISTS analysis_scores (
    run_id              UUID NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
    rank                INT NOT NULL,
    symbol              TEXT NOT NULL,
    company             TEXT NOT NULL DEFAULT '',
    momentum            DOUBLE PRECISION NOT NULL,
    volume              DOUBLE PRECISION NOT NULL,
    technical           DOUBLE PRECISION NOT NULL,
    volatility          DOUBLE PRECISION NOT NULL,
    relative_strength   DOUBLE PRECISION NOT NULL,
    catalyst            DOUBLE PRECISION NOT NULL,
    fundamental_quality DOUBLE PRECISION NOT NULL,
    short_interest      DOUBLE PRECISION NOT NULL,
    growth              DOUBLE PRECISION NOT NULL,
    options             DOUBLE PRECISION NOT NULL,
    composite           DOUBLE PRECISION NOT NULL,
    current_price       DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (run_id, symbol)
);

CREATE INDEX IF NOT EXISTS idx_scores_run_rank ON analysis_scores(run_id, rank);
`

// Store wraps the Postgres connection.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Run identifies one persisted batch invocation.
type Run struct {
	ID        uuid.UUID `db:"id"`
	StartedAt time.Time `db:"started_at"`
	Symbols   int       `db:"symbols"`
	Ranked    int       `db:"ranked"`
}

// SaveRun stores a completed batch and its ranked results in one
// transaction, returning the new run ID.
func (s *Store) SaveRun(ctx context.Context, startedAt time.Time, requested int, results []*domain.ScoreResult) (uuid.UUID, error) {
	runID := uuid.New()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, started_at, symbols, ranked) VALUES ($1, $2, $3, $4)`,
		runID, startedAt, requested, len(results)); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	const insertScore = `
        INSERT INTO analysis_scores (
            run_id, rank, symbol, company,
            momentum, volume, technical, volatility, relative_strength,
            catalyst, fundamental_quality, short_interest, growth, options,
            composite, current_price
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`

	for i, r := range results {
		if _, err := tx.ExecContext(ctx, insertScore,
			runID, i+1, r.Symbol, r.Company,
			r.Momentum, r.Volume, r.Technical, r.Volatility, r.RelativeStrength,
			r.Catalyst, r.FundamentalQuality, r.ShortInterest, r.Growth, r.Options,
			r.Composite, r.Metrics.CurrentPrice); err != nil {
			return uuid.Nil, fmt.Errorf("insert score %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ScoreRow is a persisted ranking entry.
type ScoreRow struct {
	Rank      int     `db:"rank"`
	Symbol    string  `db:"symbol"`
	Company   string  `db:"company"`
	Composite float64 `db:"composite"`
	Price     float64 `db:"current_price"`
}

// TopN returns the best n entries of a run in rank order.
func (s *Store) TopN(ctx context.Context, runID uuid.UUID, n int) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT rank, symbol, company, composite, current_price
         FROM analysis_scores WHERE run_id = $1 ORDER BY rank LIMIT $2`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	return rows, nil
}

// RecentRuns lists the latest persisted runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		`SELECT id, started_at, symbols, ranked FROM analysis_runs
         ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

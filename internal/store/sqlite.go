package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"stratlab/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ RunStore = (*SQLiteStore)(nil)

// SQLiteStore implements RunStore backed by a SQLite database. Parameter
// sets and the buy-and-hold baseline are stored as JSON columns; the
// baseline column is nullable so records written by older tooling without a
// baseline still load.
type SQLiteStore struct {
	db *sql.DB
}

// storedTimeLayout is RFC 3339 with a fixed nanosecond width. RFC3339Nano
// trims trailing fractional zeros, which breaks lexicographic ordering of
// the created_at TEXT column within a second.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	strategy              TEXT    NOT NULL,
	params                TEXT    NOT NULL,
	total_return          REAL    NOT NULL,
	annualized_return     REAL    NOT NULL,
	volatility            REAL    NOT NULL,
	sharpe                REAL    NOT NULL,
	max_drawdown          REAL    NOT NULL,
	max_drawdown_duration INTEGER NOT NULL,
	expectancy            REAL    NOT NULL,
	trade_count           INTEGER NOT NULL,
	buy_and_hold          TEXT,
	created_at            TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the runs schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(runsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a new run record and sets record.ID to the assigned row
// id. The record itself is treated as immutable; there is no update path.
func (s *SQLiteStore) SaveRun(ctx context.Context, record *domain.RunRecord) error {
	params, err := json.Marshal(record.Params)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}

	var baseline any
	if record.BuyAndHold != nil {
		b, err := json.Marshal(record.BuyAndHold)
		if err != nil {
			return fmt.Errorf("encoding baseline: %w", err)
		}
		baseline = string(b)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			strategy, params,
			total_return, annualized_return, volatility, sharpe,
			max_drawdown, max_drawdown_duration, expectancy, trade_count,
			buy_and_hold, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.StrategyID, string(params),
		record.Metrics.TotalReturn, record.Metrics.AnnualizedReturn,
		record.Metrics.Volatility, record.Metrics.Sharpe,
		record.Metrics.MaxDrawdown, record.Metrics.MaxDrawdownDuration,
		record.Metrics.Expectancy, record.Metrics.TradeCount,
		baseline, record.CreatedAt.UTC().Format(storedTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	record.ID = id
	return nil
}

// ListRuns returns stored records, newest first. strategyID filters to one
// strategy when non-empty; limit bounds the result when positive. A record
// whose JSON columns are unreadable is skipped rather than failing the
// whole batch.
func (s *SQLiteStore) ListRuns(ctx context.Context, strategyID string, limit int) ([]domain.RunRecord, error) {
	query := `
		SELECT id, strategy, params,
		       total_return, annualized_return, volatility, sharpe,
		       max_drawdown, max_drawdown_duration, expectancy, trade_count,
		       buy_and_hold, created_at
		FROM runs`
	args := []any{}
	if strategyID != "" {
		query += " WHERE strategy = ?"
		args = append(args, strategyID)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var (
			r         domain.RunRecord
			params    string
			baseline  sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&r.ID, &r.StrategyID, &params,
			&r.Metrics.TotalReturn, &r.Metrics.AnnualizedReturn,
			&r.Metrics.Volatility, &r.Metrics.Sharpe,
			&r.Metrics.MaxDrawdown, &r.Metrics.MaxDrawdownDuration,
			&r.Metrics.Expectancy, &r.Metrics.TradeCount,
			&baseline, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		if err := json.Unmarshal([]byte(params), &r.Params); err != nil {
			continue
		}
		if baseline.Valid {
			var b domain.Baseline
			if err := json.Unmarshal([]byte(baseline.String), &b); err == nil {
				r.BuyAndHold = &b
			}
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		}

		records = append(records, r)
	}
	return records, rows.Err()
}

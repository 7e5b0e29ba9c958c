// Package store defines storage interfaces for persisting and retrieving
// price bars and backtest run records, with Parquet and SQLite
// implementations plus a CSV loader for externally supplied series.
package store

import (
	"context"
	"time"

	"stratlab/internal/domain"
)

// BarStore persists and retrieves OHLCV bar data for a symbol.
type BarStore interface {
	// WriteBars persists a batch of bars for the given symbol.
	WriteBars(ctx context.Context, symbol string, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end] in
	// ascending timestamp order.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in the store.
	ListSymbols(ctx context.Context) ([]string, error)
}

// RunStore persists and retrieves backtest run records.
type RunStore interface {
	// SaveRun inserts a new run record and fills in its assigned ID.
	SaveRun(ctx context.Context, record *domain.RunRecord) error

	// ListRuns returns stored records, newest first. strategyID filters to
	// one strategy when non-empty; limit bounds the result when positive.
	ListRuns(ctx context.Context, strategyID string, limit int) ([]domain.RunRecord, error)
}

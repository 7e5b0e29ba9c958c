package optimize

import (
	"fmt"
	"log/slog"
	"time"

	"stratlab/internal/backtest"
	"stratlab/internal/domain"
	"stratlab/internal/metrics"
	"stratlab/internal/strategy"
)

// Outcome is the tagged result of evaluating one parameter combination:
// either a run record or the error that combination produced. A failed
// combination never aborts the rest of the search.
type Outcome struct {
	Params map[string]float64
	Record *domain.RunRecord
	Err    error
}

// Searcher runs a grid search for one strategy over one price series.
// Combinations are evaluated independently with no shared mutable state, in
// the grid's deterministic enumeration order.
type Searcher struct {
	engine         *backtest.Engine
	periodsPerYear float64
	log            *slog.Logger
}

// NewSearcher creates a Searcher that backtests with initialCapital and
// annualizes metrics with periodsPerYear.
func NewSearcher(initialCapital, periodsPerYear float64) *Searcher {
	return &Searcher{
		engine:         backtest.NewEngine(initialCapital),
		periodsPerYear: periodsPerYear,
		log:            slog.Default().With("component", "optimizer"),
	}
}

// Search evaluates every combination of the grid and returns one Outcome per
// combination, in enumeration order. The buy-and-hold baseline depends only
// on the series and is computed once, shared across all records.
func (s *Searcher) Search(strat strategy.Strategy, series *domain.Series, grid *Grid) []Outcome {
	baseline := metrics.BuyAndHold(series)

	outcomes := make([]Outcome, 0, grid.Size())
	it := grid.Iterator()
	for params, ok := it.Next(); ok; params, ok = it.Next() {
		record, err := s.evaluate(strat, series, params, baseline)
		if err != nil {
			s.log.Warn("combination failed", "strategy", strat.Name(), "params", params, "err", err)
			outcomes = append(outcomes, Outcome{Params: params, Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{Params: params, Record: record})
	}
	return outcomes
}

// evaluate runs a single combination end to end. A panic inside the strategy
// (e.g. division by a degenerate zero-length window) is recovered and
// reported as that combination's error, preserving failure isolation.
func (s *Searcher) evaluate(strat strategy.Strategy, series *domain.Series, params map[string]float64, baseline domain.Baseline) (record *domain.RunRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, err = nil, fmt.Errorf("strategy %s panicked with params %v: %v", strat.Name(), params, r)
		}
	}()

	signals, err := strat.Signals(series, params)
	if err != nil {
		return nil, err
	}

	equity, trades, err := s.engine.Run(series, signals)
	if err != nil {
		return nil, err
	}

	m := metrics.Compute(equity, trades, s.periodsPerYear)
	b := baseline
	return &domain.RunRecord{
		StrategyID: strat.Name(),
		Params:     params,
		Metrics:    m,
		BuyAndHold: &b,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Package backtest converts a per-bar position sequence into an equity curve
// and a list of closed trades.
//
// The signal at index i is the position weight held over the bar-over-bar
// return realized at bar i (the interval from bar i-1's close to bar i's
// close). Strategies derive that weight from information available up to bar
// i-1 — the one-bar shift that prevents look-ahead happens at the strategy
// boundary, so the engine consumes positions it can apply directly. Trade
// entries and exits are priced at the close of the bar on which the position
// was taken or released.
package backtest

import (
	"fmt"
	"math"

	"stratlab/internal/domain"
)

// Engine replays a signal sequence against a price series.
type Engine struct {
	initialCapital float64
}

// NewEngine creates an Engine that starts every equity curve at
// initialCapital. A non-positive capital is rejected at Run time.
func NewEngine(initialCapital float64) *Engine {
	return &Engine{initialCapital: initialCapital}
}

// Run walks the series in bar order and produces the equity curve and closed
// trades implied by signals. The returned curve has exactly series.Len()
// entries with curve[0] equal to the initial capital; it is deterministic in
// its inputs. Trades are emitted in chronological order and never overlap; a
// position still open at the last bar is closed there.
//
// The signal sequence must have exactly one value per bar, each within
// [-1, 1]. Mismatched lengths, out-of-domain signals, and an empty series
// are errors, never silently repaired. The returned curve is strictly
// positive: a position that wipes the account out (a short riding a gain of
// 100% or more) is a RuinError, so downstream metric math never sees a
// non-positive equity value.
func (e *Engine) Run(series *domain.Series, signals []float64) ([]float64, []domain.Trade, error) {
	if series == nil || series.Len() == 0 {
		return nil, nil, domain.ErrEmptySeries
	}
	n := series.Len()
	if len(signals) != n {
		return nil, nil, &LengthMismatchError{Bars: n, Signals: len(signals)}
	}
	if e.initialCapital <= 0 {
		return nil, nil, fmt.Errorf("initial capital must be positive, got %g", e.initialCapital)
	}
	for i, w := range signals {
		if math.IsNaN(w) || w < -1 || w > 1 {
			return nil, nil, &SignalDomainError{Index: i, Value: w}
		}
	}

	equity := make([]float64, n)
	equity[0] = e.initialCapital
	for i := 1; i < n; i++ {
		barReturn := series.Bar(i).Close/series.Bar(i-1).Close - 1
		equity[i] = equity[i-1] * (1 + signals[i]*barReturn)
		if equity[i] <= 0 {
			return nil, nil, &RuinError{Index: i, Equity: equity[i]}
		}
	}

	// Trades are maximal runs of a constant non-zero signal. A position
	// first held over the return at bar e was taken at bar e-1's close; it
	// is released at the close of the run's last bar. A run consisting only
	// of bar 0 never held an interval and emits no trade.
	var trades []domain.Trade
	position := signals[0]
	runStart := 0
	for i := 1; i <= n; i++ {
		if i < n && signals[i] == position {
			continue
		}
		if position != 0 && i-1 > 0 {
			entry := runStart - 1
			if entry < 0 {
				entry = 0
			}
			trades = append(trades, domain.Trade{
				EntryIndex: entry,
				ExitIndex:  i - 1,
				EntryPrice: series.Bar(entry).Close,
				ExitPrice:  series.Bar(i - 1).Close,
				Direction:  position,
			})
		}
		if i < n {
			position = signals[i]
			runStart = i
		}
	}

	return equity, trades, nil
}

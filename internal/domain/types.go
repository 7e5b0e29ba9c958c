// Package domain defines the core data types shared across the stratlab
// system: OHLCV bars and price series, position signals, trades, performance
// metrics, and persisted run records.
package domain

import "time"

// Bar is a single OHLCV bar. Prices and volume are float64; Volume may be
// zero but the OHLC fields must all be positive.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Position signal values. A signal is a position weight in [-1, 1] held
// during the interval that starts at the bar it is attached to. The common
// long-only strategies use only Long and Flat.
const (
	Long float64 = 1
	Flat float64 = 0
)

// Trade is a closed round-trip produced by a signal transition. Entry and
// exit prices are the closes of the transition bars.
type Trade struct {
	EntryIndex int
	ExitIndex  int
	EntryPrice float64
	ExitPrice  float64
	Direction  float64 // position weight held during the trade
}

// Return is the trade's profit or loss expressed as a fraction of the entry
// price, signed by direction.
func (t Trade) Return() float64 {
	return t.Direction * (t.ExitPrice - t.EntryPrice) / t.EntryPrice
}

// Metrics holds the risk and return statistics derived from one equity curve
// and its trade list.
type Metrics struct {
	TotalReturn         float64 `json:"total_return"`
	AnnualizedReturn    float64 `json:"annualized_return"`
	Volatility          float64 `json:"volatility"`
	Sharpe              float64 `json:"sharpe"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	MaxDrawdownDuration int     `json:"max_drawdown_duration"`
	Expectancy          float64 `json:"expectancy"`
	TradeCount          int     `json:"trade_count"`
}

// Baseline is the buy-and-hold reference computed from the price series
// alone.
type Baseline struct {
	TotalReturn float64 `json:"total_return"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// RunRecord is the persisted result of one backtest invocation. It is
// immutable after creation. BuyAndHold may be absent on records read back
// from storage.
type RunRecord struct {
	ID         int64              `json:"id,omitempty"`
	StrategyID string             `json:"strategy"`
	Params     map[string]float64 `json:"params"`
	Metrics    Metrics            `json:"metrics"`
	BuyAndHold *Baseline          `json:"buy_and_hold,omitempty"`
	CreatedAt  time.Time          `json:"timestamp"`
}

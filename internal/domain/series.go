package domain

import (
	"errors"
	"fmt"
)

// ErrEmptySeries is returned when an operation requires at least one bar.
var ErrEmptySeries = errors.New("price series is empty")

// Series is an immutable, time-ordered sequence of bars. It is constructed
// once per backtest invocation and never mutated afterwards; strategies and
// the engine only read from it.
type Series struct {
	bars []Bar
}

// NewSeries validates bars and wraps them in a Series. It requires strictly
// increasing timestamps and positive OHLC prices on every bar (volume may be
// zero). The input slice is copied so later mutation by the caller cannot
// leak into the series.
func NewSeries(bars []Bar) (*Series, error) {
	for i, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return nil, fmt.Errorf("bar %d (%s): non-positive price (open=%g high=%g low=%g close=%g)",
				i, b.Timestamp.Format(timeLayout), b.Open, b.High, b.Low, b.Close)
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			return nil, fmt.Errorf("bar %d (%s): timestamp not after previous bar (%s)",
				i, b.Timestamp.Format(timeLayout), bars[i-1].Timestamp.Format(timeLayout))
		}
	}

	copied := make([]Bar, len(bars))
	copy(copied, bars)
	return &Series{bars: copied}, nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// Len returns the number of bars in the series.
func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i.
func (s *Series) Bar(i int) Bar { return s.bars[i] }

// Closes returns a copy of the close prices in bar order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}

// First returns the first bar. It panics on an empty series; callers are
// expected to have checked Len.
func (s *Series) First() Bar { return s.bars[0] }

// Last returns the last bar. It panics on an empty series.
func (s *Series) Last() Bar { return s.bars[len(s.bars)-1] }

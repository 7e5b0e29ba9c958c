// Package builtins provides the strategy implementations that ship with
// stratlab.
package builtins

import (
	"fmt"

	"stratlab/internal/domain"
	"stratlab/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*SMACross)(nil)

// SMACross is a simple moving average crossover strategy: long while the
// fast-period SMA is above the slow-period SMA, flat otherwise.
type SMACross struct{}

// NewSMACross creates a new SMACross strategy.
func NewSMACross() *SMACross {
	return &SMACross{}
}

// Name returns "sma-cross".
func (s *SMACross) Name() string {
	return "sma-cross"
}

// Params declares the fast and slow window lengths.
func (s *SMACross) Params() []strategy.Param {
	return []strategy.Param{
		{Name: "fast_window", Min: 1, Max: 500, Default: 10},
		{Name: "slow_window", Min: 2, Max: 1000, Default: 50},
	}
}

// Signals goes long wherever the fast SMA closed above the slow SMA on the
// previous bar; the one-bar shift keeps the position free of look-ahead.
// The windows must satisfy fast < slow; a combination violating that (as
// grid searches over overlapping ranges routinely produce) is an error, not
// a silent no-op.
func (s *SMACross) Signals(series *domain.Series, params map[string]float64) ([]float64, error) {
	if err := strategy.ValidateParams(s.Params(), params); err != nil {
		return nil, err
	}
	fast := int(params["fast_window"])
	slow := int(params["slow_window"])
	if fast <= 0 || slow <= 0 {
		return nil, fmt.Errorf("sma-cross: windows must be positive, got fast=%d slow=%d", fast, slow)
	}
	if fast >= slow {
		return nil, fmt.Errorf("sma-cross: fast window %d must be shorter than slow window %d", fast, slow)
	}

	closes := series.Closes()
	fastMA := rollingMean(closes, fast)
	slowMA := rollingMean(closes, slow)

	// Decision at bar i becomes the position held over bar i+1's return.
	signals := make([]float64, len(closes))
	for i := 1; i < len(signals); i++ {
		// Both averages are meaningful only once the slow window is formed.
		if i-1 >= slow-1 && fastMA[i-1] > slowMA[i-1] {
			signals[i] = domain.Long
		}
	}
	return signals, nil
}

// rollingMean computes a simple moving average; entries before the window is
// fully formed are zero and must be masked by the caller.
func rollingMean(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

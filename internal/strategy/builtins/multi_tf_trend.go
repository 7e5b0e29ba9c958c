package builtins

import (
	"fmt"

	"stratlab/internal/domain"
	"stratlab/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*MultiTFTrend)(nil)

// MultiTFTrend holds a long position only while the close sits above moving
// averages on four horizons at once (intraday, daily, multi-day, weekly for
// daily bars). Each horizon's window is a tunable parameter.
type MultiTFTrend struct{}

// NewMultiTFTrend creates a new MultiTFTrend strategy.
func NewMultiTFTrend() *MultiTFTrend {
	return &MultiTFTrend{}
}

// Name returns "multi-tf-trend".
func (s *MultiTFTrend) Name() string {
	return "multi-tf-trend"
}

// Params declares the four horizon windows, shortest to longest.
func (s *MultiTFTrend) Params() []strategy.Param {
	return []strategy.Param{
		{Name: "w1", Min: 1, Max: 250, Default: 5},
		{Name: "w2", Min: 1, Max: 250, Default: 20},
		{Name: "w3", Min: 1, Max: 500, Default: 60},
		{Name: "w4", Min: 1, Max: 500, Default: 120},
	}
}

// Signals goes long over a bar's return when the previous bar's close sat
// above all four moving averages; the one-bar shift keeps the position free
// of look-ahead. The averages are seeded from partial windows at the start
// of the series, so the trend test is defined from the first bar.
func (s *MultiTFTrend) Signals(series *domain.Series, params map[string]float64) ([]float64, error) {
	if err := strategy.ValidateParams(s.Params(), params); err != nil {
		return nil, err
	}

	windows := make([]int, 4)
	for i, name := range []string{"w1", "w2", "w3", "w4"} {
		w := int(params[name])
		if w <= 0 {
			return nil, fmt.Errorf("multi-tf-trend: window %s must be positive, got %d", name, w)
		}
		windows[i] = w
	}

	closes := series.Closes()
	above := make([]bool, len(closes))
	for i := range above {
		above[i] = true
	}
	for _, w := range windows {
		ma := expandingMean(closes, w)
		for i, c := range closes {
			if c <= ma[i] {
				above[i] = false
			}
		}
	}

	// Decision at bar i becomes the position held over bar i+1's return.
	signals := make([]float64, len(closes))
	for i := 1; i < len(signals); i++ {
		if above[i-1] {
			signals[i] = domain.Long
		}
	}
	return signals, nil
}

// expandingMean is a rolling mean that uses however many bars are available
// until the window is full (min_periods=1 semantics).
func expandingMean(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		sum += x
		width := window
		if i+1 < window {
			width = i + 1
		} else if i >= window {
			sum -= xs[i-window]
		}
		out[i] = sum / float64(width)
	}
	return out
}

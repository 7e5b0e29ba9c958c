// Package metrics derives risk-adjusted performance statistics from an
// equity curve and its trade list. All functions are pure and deterministic.
package metrics

import (
	"math"

	"stratlab/internal/domain"
)

// DefaultPeriodsPerYear assumes daily bars over US trading days.
const DefaultPeriodsPerYear = 252

// Compute calculates the full metric set for an equity curve. The curve must
// be strictly positive, which the backtest engine guarantees; annualization
// of a negative curve has no real-valued answer. periodsPerYear scales
// volatility and annualized return; an equity curve with fewer than two
// points yields zero for every ratio metric rather than NaN.
//
// Sharpe is defined as annualized return over annualized volatility, and is
// 0 (not NaN or Inf) when volatility is zero.
func Compute(equity []float64, trades []domain.Trade, periodsPerYear float64) domain.Metrics {
	m := domain.Metrics{TradeCount: len(trades)}

	if len(equity) >= 2 {
		returns := barReturns(equity)

		m.TotalReturn = equity[len(equity)-1]/equity[0] - 1
		m.AnnualizedReturn = math.Pow(1+m.TotalReturn, periodsPerYear/float64(len(equity))) - 1
		m.Volatility = stddev(returns) * math.Sqrt(periodsPerYear)
		if m.Volatility > 0 {
			m.Sharpe = m.AnnualizedReturn / m.Volatility
		}
		m.Expectancy = expectancy(trades)
	}

	m.MaxDrawdown, m.MaxDrawdownDuration = Drawdown(equity)
	return m
}

// BuyAndHold computes the baseline of holding a constant long position over
// the whole series: the synthetic curve close[i]/close[0].
func BuyAndHold(series *domain.Series) domain.Baseline {
	closes := series.Closes()
	curve := make([]float64, len(closes))
	for i, c := range closes {
		curve[i] = c / closes[0]
	}

	var b domain.Baseline
	if len(curve) >= 2 {
		b.TotalReturn = curve[len(curve)-1]/curve[0] - 1
	}
	b.MaxDrawdown, _ = Drawdown(curve)
	return b
}

// Drawdown returns the maximum drawdown (always <= 0) and the longest
// contiguous run of bars during which the curve stays below its prior
// running peak.
func Drawdown(equity []float64) (maxDD float64, maxDuration int) {
	if len(equity) == 0 {
		return 0, 0
	}

	peak := equity[0]
	duration := 0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		dd := v/peak - 1
		if dd < maxDD {
			maxDD = dd
		}
		if dd < 0 {
			duration++
			if duration > maxDuration {
				maxDuration = duration
			}
		} else {
			duration = 0
		}
	}
	return maxDD, maxDuration
}

// barReturns computes per-bar fractional returns; the first bar's return is
// defined as zero, matching the curve's fixed starting capital.
func barReturns(equity []float64) []float64 {
	returns := make([]float64, len(equity))
	for i := 1; i < len(equity); i++ {
		returns[i] = equity[i]/equity[i-1] - 1
	}
	return returns
}

// stddev is the population standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// expectancy is the mean profit or loss per closed trade, as a fraction of
// the entry price. Zero trades yields zero.
func expectancy(trades []domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var sum float64
	for _, t := range trades {
		sum += t.Return()
	}
	return sum / float64(len(trades))
}

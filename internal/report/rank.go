// Package report ranks persisted run records by a chosen metric and formats
// the leaderboard for terminal output.
package report

import (
	"fmt"
	"sort"

	"stratlab/internal/domain"
)

// Metric names accepted by Rank.
const (
	MetricSharpe           = "sharpe"
	MetricTotalReturn      = "total_return"
	MetricAnnualizedReturn = "annualized_return"
	MetricMaxDrawdown      = "max_drawdown"
	MetricExpectancy       = "expectancy"
)

// MetricValue resolves a named metric on a record. The second return value
// is false for unknown metric names.
func MetricValue(r *domain.RunRecord, metric string) (float64, bool) {
	switch metric {
	case MetricSharpe:
		return r.Metrics.Sharpe, true
	case MetricTotalReturn:
		return r.Metrics.TotalReturn, true
	case MetricAnnualizedReturn:
		return r.Metrics.AnnualizedReturn, true
	case MetricMaxDrawdown:
		return r.Metrics.MaxDrawdown, true
	case MetricExpectancy:
		return r.Metrics.Expectancy, true
	default:
		return 0, false
	}
}

// Rank orders records descending by the named metric. Ties are broken by the
// less severe max drawdown, then by earlier creation time, so the ordering
// is fully deterministic. The input slice is not modified. An unknown metric
// name is an error.
func Rank(records []domain.RunRecord, metric string) ([]domain.RunRecord, error) {
	if _, ok := MetricValue(&domain.RunRecord{}, metric); !ok {
		return nil, fmt.Errorf("unknown ranking metric %q", metric)
	}

	ranked := make([]domain.RunRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, _ := MetricValue(&ranked[i], metric)
		vj, _ := MetricValue(&ranked[j], metric)
		if vi != vj {
			return vi > vj
		}
		// Drawdowns are <= 0; closer to zero is the less severe one.
		if ranked[i].Metrics.MaxDrawdown != ranked[j].Metrics.MaxDrawdown {
			return ranked[i].Metrics.MaxDrawdown > ranked[j].Metrics.MaxDrawdown
		}
		return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
	})
	return ranked, nil
}

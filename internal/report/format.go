package report

import (
	"fmt"
	"sort"
	"strings"

	"stratlab/internal/domain"
)

// FormatPct formats a fractional value as a signed percentage.
func FormatPct(v float64) string {
	return fmt.Sprintf("%7.2f%%", v*100)
}

// FormatParams renders a parameter set as "name=value" pairs in a stable
// order (map iteration order is not).
func FormatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, params[name])
	}
	return strings.Join(parts, " ")
}

// FormatTable renders ranked records as a fixed-width leaderboard, one row
// per run, topN rows at most.
func FormatTable(records []domain.RunRecord, topN int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-18s | %6s | %8s | %8s | %6s | %s\n",
		"STRATEGY", "SHARPE", "RETURN", "MAXDD", "TRADES", "PARAMS")

	for i, r := range records {
		if topN > 0 && i >= topN {
			break
		}
		baseline := "-"
		if r.BuyAndHold != nil {
			baseline = FormatPct(r.BuyAndHold.TotalReturn)
		}
		fmt.Fprintf(&b, "%-18s | %6.2f | %s | %s | %6d | %s (b&h %s)\n",
			r.StrategyID,
			r.Metrics.Sharpe,
			FormatPct(r.Metrics.TotalReturn),
			FormatPct(r.Metrics.MaxDrawdown),
			r.Metrics.TradeCount,
			FormatParams(r.Params),
			strings.TrimSpace(baseline),
		)
	}
	return b.String()
}

// Package strategy defines the Strategy interface for signal-generating
// trading strategies and provides a Registry for managing multiple strategy
// implementations.
package strategy

import (
	"fmt"
	"sort"

	"stratlab/internal/domain"
)

// Strategy is a pure translation from a price series and a parameter set to
// one position signal per bar.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// Params declares the parameters the strategy accepts and their numeric
	// domains.
	Params() []Param

	// Signals returns one position weight in [-1, 1] per bar of the series.
	// The returned slice must have length series.Len(). Implementations must
	// not mutate the series and must be deterministic in their inputs.
	Signals(series *domain.Series, params map[string]float64) ([]float64, error)
}

// Param declares one numeric strategy parameter and its allowed range.
type Param struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// Defaults returns the declared default value for every parameter.
func Defaults(params []Param) map[string]float64 {
	out := make(map[string]float64, len(params))
	for _, p := range params {
		out[p.Name] = p.Default
	}
	return out
}

// ValidateParams checks a concrete parameter set against the declared
// domains: unknown names and out-of-range values are rejected before the
// strategy is invoked.
func ValidateParams(declared []Param, values map[string]float64) error {
	byName := make(map[string]Param, len(declared))
	for _, p := range declared {
		byName[p.Name] = p
	}
	for name, v := range values {
		p, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown parameter %q", name)
		}
		if v < p.Min || v > p.Max {
			return fmt.Errorf("parameter %q = %g outside declared range [%g, %g]", name, v, p.Min, p.Max)
		}
	}
	return nil
}

// Registry holds a named collection of strategies for lookup and enumeration.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy to the registry, keyed by its Name().
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get retrieves a strategy by name. The second return value indicates whether
// the strategy was found.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

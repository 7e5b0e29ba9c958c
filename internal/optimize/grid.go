// Package optimize drives the backtest engine over a Cartesian grid of
// strategy parameters and collects one run record per combination.
package optimize

import (
	"fmt"
	"strconv"
	"strings"
)

// Axis is one parameter dimension of a grid, expanded from a
// start:stop:step specification into the ascending values
// start, start+step, ... up to and including stop.
type Axis struct {
	Name  string
	Start float64
	Stop  float64
	Step  float64
}

// GridSpecError reports an invalid axis specification. A grid carrying a
// degenerate axis is rejected outright rather than silently producing an
// empty or unbounded search.
type GridSpecError struct {
	Axis   string
	Reason string
}

func (e *GridSpecError) Error() string {
	return fmt.Sprintf("invalid grid axis %q: %s", e.Axis, e.Reason)
}

// Validate checks the axis bounds and step.
func (a Axis) Validate() error {
	if a.Name == "" {
		return &GridSpecError{Axis: a.Name, Reason: "axis name is empty"}
	}
	if a.Step <= 0 {
		return &GridSpecError{Axis: a.Name, Reason: fmt.Sprintf("step must be > 0, got %g", a.Step)}
	}
	if a.Start > a.Stop {
		return &GridSpecError{Axis: a.Name, Reason: fmt.Sprintf("start %g exceeds stop %g", a.Start, a.Stop)}
	}
	return nil
}

// Values expands the axis into its candidate values in ascending order.
// Every valid axis has at least one value (start itself). The count is
// derived from the bounds rather than accumulated, so floating point error
// cannot drop the stop value.
func (a Axis) Values() []float64 {
	n := int((a.Stop-a.Start)/a.Step+1e-9) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = a.Start + float64(i)*a.Step
	}
	return values
}

// ParseAxis parses "name=start:stop:step" (e.g. "fast_window=5:30:5").
func ParseAxis(spec string) (Axis, error) {
	name, rangeSpec, ok := strings.Cut(spec, "=")
	if !ok {
		return Axis{}, &GridSpecError{Axis: spec, Reason: "expected name=start:stop:step"}
	}

	parts := strings.Split(rangeSpec, ":")
	if len(parts) != 3 {
		return Axis{}, &GridSpecError{Axis: name, Reason: fmt.Sprintf("range %q is not start:stop:step", rangeSpec)}
	}
	nums := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, &GridSpecError{Axis: name, Reason: fmt.Sprintf("non-numeric bound %q", p)}
		}
		nums[i] = v
	}

	axis := Axis{Name: name, Start: nums[0], Stop: nums[1], Step: nums[2]}
	if err := axis.Validate(); err != nil {
		return Axis{}, err
	}
	return axis, nil
}

// Grid is an ordered set of axes. Axis order is significant: enumeration is
// lexicographic over the axes as declared, ascending within each axis, so
// repeated searches over the same grid visit combinations in the same order.
type Grid struct {
	axes   []Axis
	values [][]float64
}

// NewGrid validates the axes and precomputes their value sets.
func NewGrid(axes ...Axis) (*Grid, error) {
	if len(axes) == 0 {
		return nil, &GridSpecError{Axis: "", Reason: "grid has no axes"}
	}
	g := &Grid{axes: axes, values: make([][]float64, len(axes))}
	for i, a := range axes {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		g.values[i] = a.Values()
	}
	return g, nil
}

// Size returns the number of combinations, the product of per-axis
// cardinalities.
func (g *Grid) Size() int {
	size := 1
	for _, vs := range g.values {
		size *= len(vs)
	}
	return size
}

// Iterator returns a restartable enumerator positioned before the first
// combination.
func (g *Grid) Iterator() *Iterator {
	return &Iterator{grid: g, cursor: make([]int, len(g.axes)), fresh: true}
}

// Iterator walks a grid's Cartesian product lazily, one parameter set per
// Next call.
type Iterator struct {
	grid   *Grid
	cursor []int
	fresh  bool
	done   bool
}

// Next returns the next parameter set, or false when the grid is exhausted.
// The returned map is freshly allocated each call; callers may retain it.
func (it *Iterator) Next() (map[string]float64, bool) {
	if it.done {
		return nil, false
	}
	if it.fresh {
		it.fresh = false
	} else if !it.advance() {
		it.done = true
		return nil, false
	}

	params := make(map[string]float64, len(it.grid.axes))
	for i, a := range it.grid.axes {
		params[a.Name] = it.grid.values[i][it.cursor[i]]
	}
	return params, true
}

// Reset repositions the iterator before the first combination.
func (it *Iterator) Reset() {
	for i := range it.cursor {
		it.cursor[i] = 0
	}
	it.fresh = true
	it.done = false
}

// advance increments the cursor odometer-style, last axis fastest.
func (it *Iterator) advance() bool {
	for i := len(it.cursor) - 1; i >= 0; i-- {
		it.cursor[i]++
		if it.cursor[i] < len(it.grid.values[i]) {
			return true
		}
		it.cursor[i] = 0
	}
	return false
}

package optimize

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestAxisValues(t *testing.T) {
	cases := []struct {
		axis Axis
		want []float64
	}{
		{Axis{Name: "w", Start: 5, Stop: 15, Step: 5}, []float64{5, 10, 15}},
		{Axis{Name: "w", Start: 10, Stop: 10, Step: 1}, []float64{10}},
		{Axis{Name: "w", Start: 5, Stop: 14, Step: 5}, []float64{5, 10}},
		{Axis{Name: "t", Start: 0.1, Stop: 0.3, Step: 0.1}, []float64{0.1, 0.2, 0.3}},
	}
	for _, c := range cases {
		got := c.axis.Values()
		if len(got) != len(c.want) {
			t.Errorf("%+v: got %v, want %v", c.axis, got, c.want)
			continue
		}
		for i := range got {
			if math.Abs(got[i]-c.want[i]) > 1e-9 {
				t.Errorf("%+v: value[%d] = %v, want %v", c.axis, i, got[i], c.want[i])
			}
		}
	}
}

func TestAxisValidate(t *testing.T) {
	bad := []Axis{
		{Name: "", Start: 1, Stop: 2, Step: 1},
		{Name: "w", Start: 1, Stop: 2, Step: 0},
		{Name: "w", Start: 1, Stop: 2, Step: -1},
		{Name: "w", Start: 3, Stop: 2, Step: 1},
	}
	for _, a := range bad {
		err := a.Validate()
		var specErr *GridSpecError
		if !errors.As(err, &specErr) {
			t.Errorf("%+v: err = %v, want GridSpecError", a, err)
		}
	}

	if err := (Axis{Name: "w", Start: 1, Stop: 1, Step: 1}).Validate(); err != nil {
		t.Errorf("single-point axis should be valid, got %v", err)
	}
}

func TestParseAxis(t *testing.T) {
	axis, err := ParseAxis("fast_window=5:30:5")
	if err != nil {
		t.Fatalf("ParseAxis: %v", err)
	}
	want := Axis{Name: "fast_window", Start: 5, Stop: 30, Step: 5}
	if axis != want {
		t.Errorf("got %+v, want %+v", axis, want)
	}

	for _, spec := range []string{
		"no-equals",
		"w=1:2",
		"w=1:2:3:4",
		"w=a:2:1",
		"w=1:2:0",
		"w=3:1:1",
	} {
		if _, err := ParseAxis(spec); err == nil {
			t.Errorf("ParseAxis(%q): expected error", spec)
		}
	}
}

func TestGridSize(t *testing.T) {
	g, err := NewGrid(
		Axis{Name: "fast", Start: 5, Stop: 15, Step: 5},
		Axis{Name: "slow", Start: 50, Stop: 60, Step: 10},
	)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Size() != 6 {
		t.Errorf("Size = %d, want 6", g.Size())
	}
}

func TestGridEmpty(t *testing.T) {
	if _, err := NewGrid(); err == nil {
		t.Error("expected error for grid with no axes")
	}
}

func TestIteratorOrder(t *testing.T) {
	g, err := NewGrid(
		Axis{Name: "fast", Start: 5, Stop: 15, Step: 5},
		Axis{Name: "slow", Start: 50, Stop: 60, Step: 10},
	)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	// First axis slowest, second axis fastest.
	want := []map[string]float64{
		{"fast": 5, "slow": 50},
		{"fast": 5, "slow": 60},
		{"fast": 10, "slow": 50},
		{"fast": 10, "slow": 60},
		{"fast": 15, "slow": 50},
		{"fast": 15, "slow": 60},
	}

	it := g.Iterator()
	var got []map[string]float64
	for params, ok := it.Next(); ok; params, ok = it.Next() {
		got = append(got, params)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("enumeration order:\n got %v\nwant %v", got, want)
	}

	// Exhausted iterators stay exhausted.
	if _, ok := it.Next(); ok {
		t.Error("Next after exhaustion should report false")
	}
}

func TestIteratorReset(t *testing.T) {
	g, err := NewGrid(Axis{Name: "w", Start: 1, Stop: 3, Step: 1})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	collect := func(it *Iterator) []map[string]float64 {
		var out []map[string]float64
		for params, ok := it.Next(); ok; params, ok = it.Next() {
			out = append(out, params)
		}
		return out
	}

	it := g.Iterator()
	first := collect(it)
	it.Reset()
	second := collect(it)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("passes differ after Reset:\nfirst %v\nsecond %v", first, second)
	}
	if len(first) != g.Size() {
		t.Errorf("visited %d combinations, want %d", len(first), g.Size())
	}
}

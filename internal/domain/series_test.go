package domain

import (
	"strings"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func bar(n int, close float64) Bar {
	return Bar{Timestamp: day(n), Open: close, High: close, Low: close, Close: close, Volume: 1000}
}

func TestNewSeriesValid(t *testing.T) {
	s, err := NewSeries([]Bar{bar(0, 100), bar(1, 110), bar(2, 121)})
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got := s.Bar(1).Close; got != 110 {
		t.Errorf("Bar(1).Close = %v, want 110", got)
	}
	if got := s.First().Close; got != 100 {
		t.Errorf("First().Close = %v, want 100", got)
	}
	if got := s.Last().Close; got != 121 {
		t.Errorf("Last().Close = %v, want 121", got)
	}
}

func TestNewSeriesZeroVolumeAllowed(t *testing.T) {
	b := bar(0, 100)
	b.Volume = 0
	if _, err := NewSeries([]Bar{b}); err != nil {
		t.Errorf("zero volume should be accepted, got %v", err)
	}
}

func TestNewSeriesRejectsNonPositivePrice(t *testing.T) {
	b := bar(1, 110)
	b.Low = 0
	_, err := NewSeries([]Bar{bar(0, 100), b})
	if err == nil {
		t.Fatal("expected error for non-positive price")
	}
	if !strings.Contains(err.Error(), "bar 1") {
		t.Errorf("error should name the offending bar: %v", err)
	}
}

func TestNewSeriesRejectsOutOfOrderTimestamps(t *testing.T) {
	if _, err := NewSeries([]Bar{bar(1, 100), bar(0, 110)}); err == nil {
		t.Error("expected error for out-of-order timestamps")
	}
}

func TestNewSeriesRejectsDuplicateTimestamps(t *testing.T) {
	if _, err := NewSeries([]Bar{bar(0, 100), bar(0, 110)}); err == nil {
		t.Error("expected error for duplicate timestamps")
	}
}

func TestNewSeriesCopiesInput(t *testing.T) {
	bars := []Bar{bar(0, 100), bar(1, 110)}
	s, err := NewSeries(bars)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}

	bars[0].Close = 999
	if got := s.Bar(0).Close; got != 100 {
		t.Errorf("series mutated through caller slice: Bar(0).Close = %v, want 100", got)
	}
}

func TestSeriesCloses(t *testing.T) {
	s, err := NewSeries([]Bar{bar(0, 100), bar(1, 110)})
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}

	closes := s.Closes()
	if len(closes) != 2 || closes[0] != 100 || closes[1] != 110 {
		t.Errorf("Closes() = %v, want [100 110]", closes)
	}

	// Closes returns a copy; writing through it must not reach the series.
	closes[0] = 1
	if s.Bar(0).Close != 100 {
		t.Error("series mutated through Closes() slice")
	}
}

func TestTradeReturn(t *testing.T) {
	tr := Trade{EntryIndex: 0, ExitIndex: 2, EntryPrice: 100, ExitPrice: 110, Direction: Long}
	if got, want := tr.Return(), 0.1; !approx(got, want) {
		t.Errorf("Return() = %v, want %v", got, want)
	}

	short := Trade{EntryIndex: 0, ExitIndex: 2, EntryPrice: 100, ExitPrice: 90, Direction: -1}
	if got, want := short.Return(), 0.1; !approx(got, want) {
		t.Errorf("short Return() = %v, want %v", got, want)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-12 && d > -1e-12
}

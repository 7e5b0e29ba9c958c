package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stratlab/internal/domain"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp CSV: %v", err)
	}
	return path
}

func TestReadCSVSeries(t *testing.T) {
	path := writeTempCSV(t, `datetime,open,high,low,close,volume
2024-01-02,100,105,99,104,1000
2024-01-03,104,110,103,109,1200
2024-01-04,109,112,107,111,900
`)

	series, err := ReadCSVSeries(path)
	if err != nil {
		t.Fatalf("ReadCSVSeries: %v", err)
	}
	if series.Len() != 3 {
		t.Fatalf("Len = %d, want 3", series.Len())
	}
	if got := series.Bar(1).Close; got != 109 {
		t.Errorf("bar 1 close = %v, want 109", got)
	}
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !series.Bar(0).Timestamp.Equal(want) {
		t.Errorf("bar 0 timestamp = %v, want %v", series.Bar(0).Timestamp, want)
	}
}

func TestReadCSVSeriesColumnOrder(t *testing.T) {
	// Columns may appear in any order.
	path := writeTempCSV(t, `close,volume,datetime,open,high,low
104,1000,2024-01-02,100,105,99
109,1200,2024-01-03,104,110,103
`)

	series, err := ReadCSVSeries(path)
	if err != nil {
		t.Fatalf("ReadCSVSeries: %v", err)
	}
	if got := series.Bar(0).Close; got != 104 {
		t.Errorf("bar 0 close = %v, want 104", got)
	}
}

func TestReadCSVSeriesMissingColumn(t *testing.T) {
	path := writeTempCSV(t, `datetime,open,high,low,volume
2024-01-02,100,105,99,1000
`)

	_, err := ReadCSVSeries(path)
	if err == nil || !strings.Contains(err.Error(), "close") {
		t.Errorf("err = %v, want missing-column error naming %q", err, "close")
	}
}

func TestReadCSVSeriesBadCell(t *testing.T) {
	path := writeTempCSV(t, `datetime,open,high,low,close,volume
2024-01-02,100,105,99,104,1000
2024-01-03,104,110,103,oops,1200
`)

	_, err := ReadCSVSeries(path)
	if err == nil {
		t.Fatal("expected error for non-numeric cell")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the offending row: %v", err)
	}
}

func TestReadCSVSeriesBadTimestamp(t *testing.T) {
	path := writeTempCSV(t, `datetime,open,high,low,close,volume
Jan 2 2024,100,105,99,104,1000
`)

	_, err := ReadCSVSeries(path)
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("err = %v, want timestamp error naming row 2", err)
	}
}

func TestReadCSVSeriesOutOfOrder(t *testing.T) {
	path := writeTempCSV(t, `datetime,open,high,low,close,volume
2024-01-03,104,110,103,109,1200
2024-01-02,100,105,99,104,1000
`)

	if _, err := ReadCSVSeries(path); err == nil {
		t.Error("expected error for out-of-order timestamps")
	}
}

func TestWriteThenReadCSVSeries(t *testing.T) {
	bars := []domain.Bar{
		{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 105, Low: 99, Close: 104, Volume: 1000},
		{Timestamp: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Open: 104, High: 110, Low: 103, Close: 109, Volume: 0},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSVSeries(path, bars); err != nil {
		t.Fatalf("WriteCSVSeries: %v", err)
	}

	series, err := ReadCSVSeries(path)
	if err != nil {
		t.Fatalf("ReadCSVSeries: %v", err)
	}
	if series.Len() != len(bars) {
		t.Fatalf("Len = %d, want %d", series.Len(), len(bars))
	}
	for i, want := range bars {
		got := series.Bar(i)
		if !got.Timestamp.Equal(want.Timestamp) || got.Close != want.Close || got.Volume != want.Volume {
			t.Errorf("bar %d = %+v, want %+v", i, got, want)
		}
	}
}

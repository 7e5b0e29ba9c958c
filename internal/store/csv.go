package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"stratlab/internal/domain"
)

// csvColumns are the required columns of an input price CSV, in any order.
var csvColumns = []string{"datetime", "open", "high", "low", "close", "volume"}

// ReadCSVSeries loads a price series from a CSV file with the columns
// datetime,open,high,low,close,volume. A missing column, a non-parseable
// timestamp, or a non-numeric cell fails immediately with the offending
// row; out-of-order or duplicate timestamps are rejected by the series
// constructor.
func ReadCSVSeries(path string) (*domain.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening price CSV: %w", err)
	}
	defer f.Close()

	bars, err := parseCSVBars(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	series, err := domain.NewSeries(bars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

func parseCSVBars(r io.Reader) ([]domain.Bar, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range csvColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing required column %q (have %v)", name, header)
		}
	}

	var bars []domain.Bar
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		ts, err := parseTimestamp(fields[col["datetime"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		bar := domain.Bar{Timestamp: ts}
		for _, fc := range []struct {
			name string
			dst  *float64
		}{
			{"open", &bar.Open},
			{"high", &bar.High},
			{"low", &bar.Low},
			{"close", &bar.Close},
			{"volume", &bar.Volume},
		} {
			v, err := strconv.ParseFloat(fields[col[fc.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: column %q: non-numeric value %q", row, fc.name, fields[col[fc.name]])
			}
			*fc.dst = v
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// parseTimestamp accepts RFC 3339 or a plain date, the two shapes produced
// by the fetch pipeline.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05Z07:00", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", s)
}

// WriteCSVSeries writes bars as a normalized CSV with the standard column
// set, for interchange with external tooling.
func WriteCSVSeries(path string, bars []domain.Bar) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating price CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return err
	}
	for _, b := range bars {
		row := []string{
			b.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

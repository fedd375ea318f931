// Package dataset loads OHLCV bar files. The canonical format is the CSV
// layout produced by the data-collection tooling:
//
//	timestamp,open,high,low,close,volume
//
// where timestamp is RFC3339, "2006-01-02 15:04:05", or an epoch in
// milliseconds or seconds. Compressed datasets are handled transparently:
// .xz files are decompressed on the fly and .zip archives are extracted
// to a scratch directory first.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"tradesim/market"
)

// LoadBars reads every bar from the file at path, in file order.
func LoadBars(path string) ([]market.Bar, error) {
	switch {
	case strings.HasSuffix(path, ".zip"):
		return loadFromZip(path)
	case strings.HasSuffix(path, ".xz"):
		return loadFromXZ(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBars(f)
}

func loadFromXZ(path string) ([]market.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: open xz %s: %w", path, err)
	}
	return ReadBars(r)
}

func loadFromZip(path string) ([]market.Bar, error) {
	dir, err := os.MkdirTemp("", "dataset-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("dataset: extract %s: %w", path, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, fmt.Errorf("dataset: archive %s must contain exactly one CSV, found %d", path, len(matches))
	}
	return LoadBars(matches[0])
}

// ReadBars parses CSV bar rows from r. A header row is allowed and
// detected by a non-numeric first field.
func ReadBars(r io.Reader) ([]market.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		bars []market.Bar
		line int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(rec) < 6 {
			return nil, fmt.Errorf("dataset: row %d has %d fields, want 6", line, len(rec))
		}
		if line == 1 && !isNumericOrTime(rec[1]) {
			continue // header
		}

		ts, err := parseTimestamp(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", line, err)
		}

		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d field %d: %w", line, i+1, err)
			}
			vals[i] = v
		}

		bars = append(bars, market.Bar{
			Time:   ts,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return bars, nil
}

func isNumericOrTime(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Millisecond epochs are 13 digits for contemporary dates.
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

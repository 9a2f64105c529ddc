// Package datasource loads candle series for historical replay.
package datasource

import (
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// Source yields candles in chronological order.
type Source interface {
	// Next returns the next candle, or false once the series is exhausted.
	Next() (types.Candle, bool)
	// Reset rewinds the source to the first candle.
	Reset()
	// Len is the total number of candles in the series.
	Len() int
}

// Row is one CSV line of the expected candle layout:
// time,open,high,low,close,volume.
type Row struct {
	Time   string  `csv:"time"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// Candle converts the row into a candle.
func (r Row) Candle() types.Candle {
	return types.Candle{
		Open:   r.Open,
		High:   r.High,
		Low:    r.Low,
		Close:  r.Close,
		Volume: r.Volume,
	}
}

// Timestamp parses the row's time column as RFC 3339; a plain date is also
// accepted.
func (r Row) Timestamp() (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, r.Time); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeDataParseFailed, "cannot parse timestamp %q", r.Time)
}

// SliceSource replays an in-memory candle series.
type SliceSource struct {
	candles []types.Candle
	next    int
}

// NewSliceSource wraps a candle series.
func NewSliceSource(candles []types.Candle) *SliceSource {
	return &SliceSource{candles: candles}
}

// Next returns the next candle in the series.
func (s *SliceSource) Next() (types.Candle, bool) {
	if s.next >= len(s.candles) {
		return types.Candle{}, false
	}

	c := s.candles[s.next]
	s.next++

	return c, true
}

// Reset rewinds to the first candle.
func (s *SliceSource) Reset() {
	s.next = 0
}

// Len is the total number of candles.
func (s *SliceSource) Len() int {
	return len(s.candles)
}

// NewCSVSource loads a candle series from a CSV file.
func NewCSVSource(path string) (*SliceSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "cannot open %s", path)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses a candle series from CSV content.
func ReadCSV(r io.Reader) (*SliceSource, error) {
	var rows []Row

	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "malformed candle CSV", err)
	}

	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeDataSourceEmpty, "candle series is empty")
	}

	candles := make([]types.Candle, len(rows))

	var prev time.Time

	for i, row := range rows {
		ts, err := row.Timestamp()
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "row %d", i+1)
		}

		if i > 0 && ts.Before(prev) {
			return nil, errors.Newf(errors.ErrCodeDataParseFailed,
				"row %d is out of chronological order: %s precedes %s", i+1, row.Time, rows[i-1].Time)
		}

		prev = ts
		candles[i] = row.Candle()
	}

	return NewSliceSource(candles), nil
}

// Package series holds one symbol's daily price history, newest first.
package series

import (
	"sort"
	"time"

	"StockLens/internal/model"
)

// DefaultSpan is how far before the reference date an open start bound reaches.
const DefaultSpan = -10

// Series is an immutable, date-descending sequence of price records.
// Safe for concurrent readers.
type Series struct {
	symbol  string
	records []model.PriceRecord
}

// New copies records and sorts them newest first. Records sharing a date keep
// their input order.
func New(symbol string, records []model.PriceRecord) *Series {
	sorted := make([]model.PriceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	return &Series{symbol: symbol, records: sorted}
}

func (s *Series) Symbol() string { return s.symbol }

func (s *Series) Len() int { return len(s.records) }

// Records returns a copy of all records, newest first.
func (s *Series) Records() []model.PriceRecord {
	out := make([]model.PriceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Latest returns the most recent record.
func (s *Series) Latest() (model.PriceRecord, error) {
	if len(s.records) == 0 {
		return model.PriceRecord{}, ErrEmpty
	}
	return s.records[0], nil
}

// Oldest returns the earliest record.
func (s *Series) Oldest() (model.PriceRecord, error) {
	if len(s.records) == 0 {
		return model.PriceRecord{}, ErrEmpty
	}
	return s.records[len(s.records)-1], nil
}

// ClosestOnOrBefore returns the record with the greatest date not after d.
// With duplicate dates the first one in stored order wins.
func (s *Series) ClosestOnOrBefore(d time.Time) (model.PriceRecord, bool) {
	i := s.firstNotAfter(d)
	if i == len(s.records) {
		return model.PriceRecord{}, false
	}
	return s.records[i], true
}

// Between returns the records dated within [start, end], newest first.
func (s *Series) Between(start, end time.Time) []model.PriceRecord {
	lo := s.firstNotAfter(end)
	hi := sort.Search(len(s.records), func(i int) bool { return s.records[i].Date.Before(start) })
	if lo >= hi {
		return []model.PriceRecord{}
	}
	out := make([]model.PriceRecord, hi-lo)
	copy(out, s.records[lo:hi])
	return out
}

// DateRange resolves the optional bounds against ref (see ResolveRange) and
// returns the records within them, newest first.
func (s *Series) DateRange(ref, start, end time.Time) ([]model.PriceRecord, error) {
	start, end, err := ResolveRange(ref, start, end)
	if err != nil {
		return nil, err
	}
	return s.Between(start, end), nil
}

// ResolveRange fills zero bounds: end defaults to ref, start to ten years
// before ref. The resolved end must be strictly after the start.
func ResolveRange(ref, start, end time.Time) (time.Time, time.Time, error) {
	if end.IsZero() {
		end = ref
	}
	if start.IsZero() {
		start = model.AddCalendar(ref, DefaultSpan, 0, 0)
	}
	if !end.After(start) {
		return start, end, ErrInvalidRange
	}
	return start, end, nil
}

// firstNotAfter is the index of the first record dated on or before d.
func (s *Series) firstNotAfter(d time.Time) int {
	return sort.Search(len(s.records), func(i int) bool { return !s.records[i].Date.After(d) })
}

// Package report computes per-symbol percentage price changes over the fixed
// look-back windows and renders them as a fixed-width table.
package report

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/guregu/null/v6"
	"github.com/rs/zerolog/log"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
	"StockLens/internal/series"
)

// SortBySymbol orders rows by symbol name; every other key is a window name.
const SortBySymbol = "symbol"

var (
	// ErrUnknownKey is returned for a sort key that is neither "symbol" nor a window name.
	ErrUnknownKey = errors.New("unknown sort key")
	// ErrInvalidLimit is returned for a negative row limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// MissingPolicy controls how a window without an anchor price is reported.
type MissingPolicy string

const (
	// MissingZero reports 0.00, conflating "no data" with "no change".
	MissingZero MissingPolicy = "zero"
	// MissingAbsent leaves the value unset; it renders as n/a and sorts last.
	MissingAbsent MissingPolicy = "absent"
)

// Valid reports whether p is a known policy.
func (p MissingPolicy) Valid() bool {
	return p == MissingZero || p == MissingAbsent
}

// Options configures a Compute call.
type Options struct {
	SortBy    string
	Limit     int // 0 means no limit
	Reference time.Time
	Missing   MissingPolicy
}

// Catalog is the read-only view Compute needs.
type Catalog interface {
	All() iter.Seq2[string, *series.Series]
}

// SortKeys lists every accepted sort key.
func SortKeys() []string {
	return append([]string{SortBySymbol}, model.WindowNames()...)
}

// ValidateSortKey checks key before any computation runs.
func ValidateSortKey(key string) error {
	if key == SortBySymbol {
		return nil
	}
	if _, ok := model.WindowByName(key); ok {
		return nil
	}
	return fmt.Errorf("%w %q (want one of %v)", ErrUnknownKey, key, SortKeys())
}

// Compute builds one row per symbol, sorted and truncated per opts.
// Symbols without any records are skipped with a warning.
func Compute(cat Catalog, opts Options) ([]model.PerformanceRow, error) {
	if opts.SortBy == "" {
		opts.SortBy = SortBySymbol
	}
	if err := ValidateSortKey(opts.SortBy); err != nil {
		return nil, err
	}
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, opts.Limit)
	}
	if opts.Missing == "" {
		opts.Missing = MissingZero
	}
	if !opts.Missing.Valid() {
		return nil, fmt.Errorf("unknown missing-data policy %q", opts.Missing)
	}

	var rows []model.PerformanceRow
	for sym, s := range cat.All() {
		row, err := computeRow(sym, s, opts)
		if err != nil {
			if errors.Is(err, series.ErrEmpty) {
				log.Warn().Str("symbol", sym).Msg("no price records, skipping row")
				continue
			}
			return nil, err
		}
		rows = append(rows, row)
	}

	sortRows(rows, opts.SortBy)

	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

func computeRow(sym string, s *series.Series, opts Options) (model.PerformanceRow, error) {
	latest, err := s.Latest()
	if err != nil {
		return model.PerformanceRow{}, fmt.Errorf("%s: %w", sym, err)
	}
	ending := latest.Close

	row := model.PerformanceRow{
		Symbol:  sym,
		Changes: make(map[string]null.Float, len(model.Windows)),
	}
	for _, w := range model.Windows {
		change := null.Float{}
		if anchor, ok := s.ClosestOnOrBefore(w.From(opts.Reference)); ok {
			// Baseline is the anchor's open, compared against the latest close.
			pct, err := calculator.PercentChange(ending, anchor.Open)
			if err != nil {
				log.Warn().Str("symbol", sym).Str("window", w.Name).
					Time("anchor", anchor.Date).Err(err).Msg("unusable anchor price")
			} else {
				change = null.FloatFrom(pct)
			}
		}
		if !change.Valid && opts.Missing == MissingZero {
			change = null.FloatFrom(0)
		}
		log.Debug().Str("symbol", sym).Str("window", w.Name).
			Str("end", ending.String()).Interface("change", change).Msg("window change")
		row.Changes[w.Name] = change
	}
	return row, nil
}

// sortRows orders by symbol ascending, or by a window's change descending with
// unset values last. Ties keep their incoming order.
func sortRows(rows []model.PerformanceRow, key string) {
	if key == SortBySymbol {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Changes[key], rows[j].Changes[key]
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Float64 > b.Float64
	})
}

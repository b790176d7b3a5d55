// Package catalog maps symbols to their loaded price series. A Catalog is
// built once and never mutated, so it can be shared by concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog/log"

	"StockLens/internal/collector"
	"StockLens/internal/series"
)

var (
	// ErrIO is returned when a source cannot be read.
	ErrIO = errors.New("price source unreadable")
	// ErrUnknownSymbol marks a lookup of a symbol the catalog does not hold.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Source provides raw price series, one per symbol.
type Source interface {
	Name() string
	Symbols() ([]string, error)
	Load(symbol string) (*series.Series, error)
}

// Catalog is an immutable symbol -> series mapping that remembers load order.
type Catalog struct {
	order  []string
	series map[string]*series.Series
}

// Load reads every symbol from src. Any failure aborts the whole load; parse
// failures surface as *series.ParseError tagged with the symbol, everything
// else wraps ErrIO.
func Load(src Source) (*Catalog, error) {
	symbols, err := src.Symbols()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, src.Name(), err)
	}

	c := &Catalog{
		order:  make([]string, 0, len(symbols)),
		series: make(map[string]*series.Series, len(symbols)),
	}
	for _, sym := range symbols {
		s, err := src.Load(sym)
		if err != nil {
			var pe *series.ParseError
			if errors.As(err, &pe) {
				pe.Symbol = sym
				return nil, fmt.Errorf("load %s: %w", sym, pe)
			}
			return nil, fmt.Errorf("%w: load %s: %w", ErrIO, sym, err)
		}
		if _, dup := c.series[sym]; !dup {
			c.order = append(c.order, sym)
		}
		c.series[sym] = s
		log.Debug().Str("symbol", sym).Int("records", s.Len()).Msg("series loaded")
	}

	log.Info().Str("source", src.Name()).Int("symbols", len(c.order)).Msg("catalog loaded")
	return c, nil
}

// LoadDirectory loads a catalog from a directory of <SYMBOL>.csv files.
func LoadDirectory(path string) (*Catalog, error) {
	return Load(collector.NewCSVSource(path))
}

// Get returns the series for symbol. A miss is logged and reported via ok.
func (c *Catalog) Get(symbol string) (*series.Series, bool) {
	s, ok := c.series[symbol]
	if !ok {
		log.Error().Str("symbol", symbol).Msgf("key [%s] not found", symbol)
	}
	return s, ok
}

// All yields (symbol, series) pairs in load order. The sequence can be
// ranged over any number of times.
func (c *Catalog) All() iter.Seq2[string, *series.Series] {
	return func(yield func(string, *series.Series) bool) {
		for _, sym := range c.order {
			if !yield(sym, c.series[sym]) {
				return
			}
		}
	}
}

// Symbols returns the symbols in load order.
func (c *Catalog) Symbols() []string {
	return append([]string(nil), c.order...)
}

func (c *Catalog) Len() int { return len(c.order) }

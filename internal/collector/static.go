package collector

import (
	"fmt"

	"StockLens/internal/model"
	"StockLens/internal/series"
)

// StaticSource serves fixed in-memory records, for development and testing.
type StaticSource struct {
	Order   []string
	Records map[string][]model.PriceRecord
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{Records: make(map[string][]model.PriceRecord)}
}

// Add registers a symbol; symbols are served in the order they were added.
func (s *StaticSource) Add(symbol string, records ...model.PriceRecord) *StaticSource {
	if _, ok := s.Records[symbol]; !ok {
		s.Order = append(s.Order, symbol)
	}
	s.Records[symbol] = append(s.Records[symbol], records...)
	return s
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Symbols() ([]string, error) {
	return append([]string(nil), s.Order...), nil
}

func (s *StaticSource) Load(symbol string) (*series.Series, error) {
	records, ok := s.Records[symbol]
	if !ok {
		return nil, fmt.Errorf("static: no symbol %q", symbol)
	}
	return series.New(symbol, records), nil
}

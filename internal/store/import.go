package store

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"StockLens/internal/catalog"
)

// Import saves every series of c, replacing what was stored for those symbols.
func (s *SQLite) Import(c *catalog.Catalog) (symbols, records int, err error) {
	for sym, ser := range c.All() {
		if err := s.Save(sym, ser.Records()); err != nil {
			return symbols, records, fmt.Errorf("import %s: %w", sym, err)
		}
		symbols++
		records += ser.Len()
		log.Debug().Str("symbol", sym).Int("records", ser.Len()).Msg("symbol imported")
	}
	log.Info().Int("symbols", symbols).Int("records", records).Str("db", s.path).Msg("import complete")
	return symbols, records, nil
}

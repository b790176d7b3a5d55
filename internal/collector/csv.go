package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"StockLens/internal/series"
)

const csvExt = ".csv"

// CSVSource reads one <SYMBOL>.csv file per symbol from a directory.
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a CSVSource rooted at dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (c *CSVSource) Name() string { return "csv:" + c.Dir }

// Symbols lists the file stems of all .csv files in the directory, in
// directory (lexical) order. Symbol case is preserved.
func (c *CSVSource) Symbols() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", c.Dir, err)
	}
	var symbols []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != csvExt {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(e.Name(), csvExt))
	}
	return symbols, nil
}

// Load reads and parses the symbol's file.
func (c *CSVSource) Load(symbol string) (*series.Series, error) {
	path := filepath.Join(c.Dir, symbol+csvExt)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(symbol, f)
}

// ReadCSV parses CSV price data whose first row is the header. Input with no
// data rows yields an empty series.
func ReadCSV(symbol string, r io.Reader) (*series.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &series.ParseError{Symbol: symbol, Err: err}
	}
	if len(rows) == 0 {
		return series.New(symbol, nil), nil
	}
	return series.Parse(symbol, rows[0], rows[1:])
}

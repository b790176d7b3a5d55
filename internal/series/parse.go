package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StockLens/internal/model"
)

// Source column headers.
const (
	ColDate   = "Date"
	ColClose  = "Close/Last"
	ColOpen   = "Open"
	ColHigh   = "High"
	ColLow    = "Low"
	ColVolume = "Volume"
)

var requiredColumns = []string{ColDate, ColClose, ColOpen, ColHigh, ColLow, ColVolume}

// dateLayouts are tried in order.
var dateLayouts = []string{"01/02/2006", "1/2/2006", "2006-01-02"}

// Parse converts raw tabular rows into a Series. header names the columns of
// every row; column order is free. Prices may carry a leading "$".
func Parse(symbol string, header []string, rows [][]string) (*Series, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &ParseError{Symbol: symbol, Field: col, Err: fmt.Errorf("missing column %q", col)}
		}
	}

	records := make([]model.PriceRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 1
		field := func(col string) (string, error) {
			j := idx[col]
			if j >= len(row) {
				return "", &ParseError{Symbol: symbol, Line: line, Field: col, Err: errors.New("missing value")}
			}
			return strings.TrimSpace(row[j]), nil
		}

		var rec model.PriceRecord
		raw, err := field(ColDate)
		if err != nil {
			return nil, err
		}
		if rec.Date, err = ParseDate(raw); err != nil {
			return nil, &ParseError{Symbol: symbol, Line: line, Field: ColDate, Value: raw, Err: err}
		}

		for _, p := range []struct {
			col string
			dst *decimal.Decimal
		}{
			{ColClose, &rec.Close},
			{ColOpen, &rec.Open},
			{ColHigh, &rec.High},
			{ColLow, &rec.Low},
		} {
			raw, err := field(p.col)
			if err != nil {
				return nil, err
			}
			if *p.dst, err = ParsePrice(raw); err != nil {
				return nil, &ParseError{Symbol: symbol, Line: line, Field: p.col, Value: raw, Err: err}
			}
		}

		if raw, err = field(ColVolume); err != nil {
			return nil, err
		}
		if rec.Volume, err = strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64); err != nil {
			return nil, &ParseError{Symbol: symbol, Line: line, Field: ColVolume, Value: raw, Err: err}
		}

		records = append(records, rec)
	}
	return New(symbol, records), nil
}

// ParsePrice drops every "$" sign and parses the remainder as a decimal, so
// both "$1.25" and "-$1.25" are accepted.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "$", ""))
	if s == "" {
		return decimal.Decimal{}, errors.New("empty price")
	}
	return decimal.NewFromString(s)
}

// ParseDate accepts MM/DD/YYYY and YYYY-MM-DD and returns midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

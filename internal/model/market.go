package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord represents a single daily bar for one symbol.
type PriceRecord struct {
	Date   time.Time
	Open   decimal.Decimal
	Close  decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Volume int64
}

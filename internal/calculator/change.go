package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentChange returns (end - base) / base * 100.
func PercentChange(end, base decimal.Decimal) (float64, error) {
	if base.IsZero() {
		return 0, errors.New("base price is zero")
	}
	pct := end.Sub(base).Div(base).Mul(hundred)
	return pct.InexactFloat64(), nil
}

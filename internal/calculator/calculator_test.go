package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/model"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		end, base string
		want      float64
	}{
		{"150", "100", 50},
		{"100", "100", 0},
		{"50", "100", -50},
		{"187.50", "125", 50},
	}
	for _, tt := range tests {
		got, err := PercentChange(decimal.RequireFromString(tt.end), decimal.RequireFromString(tt.base))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s over %s", tt.end, tt.base)
	}
}

func TestPercentChange_ZeroBase(t *testing.T) {
	_, err := PercentChange(decimal.NewFromInt(10), decimal.Zero)
	assert.Error(t, err)
}

func bar(day int, open, close, high, low float64, vol int64) model.PriceRecord {
	return model.PriceRecord{
		Date:   time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Open:   decimal.NewFromFloat(open),
		Close:  decimal.NewFromFloat(close),
		High:   decimal.NewFromFloat(high),
		Low:    decimal.NewFromFloat(low),
		Volume: vol,
	}
}

func TestRanges(t *testing.T) {
	records := []model.PriceRecord{
		bar(3, 10, 12, 13, 9, 500),
		bar(2, 11, 15, 16, 10.5, 1500),
		bar(1, 9, 8, 9.5, 7, 700),
	}

	high, low, err := PriceRange(records)
	require.NoError(t, err)
	assert.Equal(t, 16.0, high)
	assert.Equal(t, 7.0, low)

	maxClose, err := MaxClose(records)
	require.NoError(t, err)
	assert.Equal(t, 15.0, maxClose)

	maxVol, err := MaxVolume(records)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), maxVol)
}

func TestRanges_Empty(t *testing.T) {
	_, _, err := PriceRange(nil)
	assert.Error(t, err)
	_, err = MaxClose(nil)
	assert.Error(t, err)
	_, err = MaxVolume(nil)
	assert.Error(t, err)
}

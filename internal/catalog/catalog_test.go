package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/collector"
	"StockLens/internal/model"
	"StockLens/internal/series"
)

const header = "Date,Close/Last,Volume,Open,High,Low\n"

func writeCSV(t *testing.T, dir, symbol, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(header+body), 0o644))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "MSFT", "06/06/2024,$424.52,16000000,$424.01,$425.31,$420.58\n")
	writeCSV(t, dir, "AAPL", "06/06/2024,$194.48,41181750,$195.685,$196.50,$194.17\n06/05/2024,$195.87,54156790,$195.40,$196.90,$194.87\n")
	writeCSV(t, dir, "aapl", "06/06/2024,$1,1,$1,$1,$1\n")

	c, err := LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"AAPL", "MSFT", "aapl"}, c.Symbols())

	s, ok := c.Get("AAPL")
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())

	lower, ok := c.Get("aapl")
	require.True(t, ok, "symbols are case-sensitive")
	assert.Equal(t, 1, lower.Len())
}

func TestLoadDirectory_Unreadable(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestLoadDirectory_ParseErrorAbortsLoad(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", "06/06/2024,$194.48,41181750,$195.685,$196.50,$194.17\n")
	writeCSV(t, dir, "BROKEN", "not-a-date,$1,1,$1,$1,$1\n")

	_, err := LoadDirectory(dir)
	require.Error(t, err)
	var pe *series.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "BROKEN", pe.Symbol)
	assert.Equal(t, series.ColDate, pe.Field)
}

func TestGet_Unknown(t *testing.T) {
	c, err := Load(collector.NewStaticSource().Add("AAPL"))
	require.NoError(t, err)
	s, ok := c.Get("GOOG")
	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestAll_OrderAndRestart(t *testing.T) {
	rec := model.PriceRecord{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: decimal.NewFromInt(1), Close: decimal.NewFromInt(1)}
	src := collector.NewStaticSource().Add("ZZZ", rec).Add("AAA").Add("MMM", rec, rec)
	c, err := Load(src)
	require.NoError(t, err)

	collect := func() []string {
		var out []string
		for sym, s := range c.All() {
			require.NotNil(t, s)
			out = append(out, sym)
		}
		return out
	}
	assert.Equal(t, []string{"ZZZ", "AAA", "MMM"}, collect())
	assert.Equal(t, collect(), collect())

	for sym := range c.All() {
		assert.Equal(t, "ZZZ", sym)
		break
	}
}

type failingSource struct{ collector.StaticSource }

func (f *failingSource) Load(symbol string) (*series.Series, error) {
	return nil, os.ErrPermission
}

func TestLoad_SourceFailureIsIO(t *testing.T) {
	src := &failingSource{StaticSource: *collector.NewStaticSource().Add("AAPL")}
	_, err := Load(src)
	assert.ErrorIs(t, err, ErrIO)
}

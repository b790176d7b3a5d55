package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockLens/internal/catalog"
	"StockLens/internal/collector"
	"StockLens/internal/model"
)

var ref = time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)

func bar(d time.Time, open, close string) model.PriceRecord {
	return model.PriceRecord{
		Date:   d,
		Open:   decimal.RequireFromString(open),
		Close:  decimal.RequireFromString(close),
		High:   decimal.RequireFromString(close),
		Low:    decimal.RequireFromString(open),
		Volume: 1000,
	}
}

func load(t *testing.T, src *collector.StaticSource) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(src)
	require.NoError(t, err)
	return c
}

func TestCompute_PercentChangeFromAnchorOpen(t *testing.T) {
	src := collector.NewStaticSource().Add("AAPL",
		bar(ref, "149", "150"),
		bar(ref.AddDate(0, 0, -7), "100", "999"), // 1w anchor: open 100
		bar(ref.AddDate(0, 0, -14), "120", "1"),  // 2w anchor: open 120
	)
	rows, err := Compute(load(t, src), Options{Reference: ref})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	ch := rows[0].Changes
	assert.True(t, ch["1w"].Valid)
	assert.Equal(t, 50.0, ch["1w"].Float64)
	assert.Equal(t, 25.0, ch["2w"].Float64)
	// no record on or before 2024-05-06
	assert.Equal(t, 0.0, ch["1m"].Float64)
	assert.True(t, ch["1m"].Valid, "zero policy never leaves a value unset")
}

func TestCompute_AnchorIsClosestOnOrBefore(t *testing.T) {
	// 1m target is 2024-05-06; nearest earlier record is 2024-05-03.
	src := collector.NewStaticSource().Add("AAPL",
		bar(ref, "1", "110"),
		bar(time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), "50", "50"),
		bar(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), "100", "100"),
	)
	rows, err := Compute(load(t, src), Options{Reference: ref})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, rows[0].Changes["1m"].Float64, 1e-9)
	assert.Equal(t, 0.0, rows[0].Changes["max"].Float64)
}

func TestCompute_MissingAbsentPolicy(t *testing.T) {
	src := collector.NewStaticSource().Add("NEW", bar(ref, "10", "12"))
	rows, err := Compute(load(t, src), Options{Reference: ref, Missing: MissingAbsent})
	require.NoError(t, err)
	for _, name := range model.WindowNames() {
		assert.False(t, rows[0].Changes[name].Valid, name)
	}
}

func TestCompute_SkipsEmptySymbol(t *testing.T) {
	src := collector.NewStaticSource().
		Add("AAPL", bar(ref, "100", "150"), bar(ref.AddDate(-1, 0, 0), "100", "100")).
		Add("MSFT")
	rows, err := Compute(load(t, src), Options{SortBy: "symbol", Reference: ref})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, 50.0, rows[0].Changes["1yr"].Float64)
}

func sample() *collector.StaticSource {
	week := ref.AddDate(0, 0, -7)
	return collector.NewStaticSource().
		Add("MSFT", bar(ref, "1", "110"), bar(week, "100", "100")).
		Add("AAPL", bar(ref, "1", "90"), bar(week, "100", "100")).
		Add("NVDA", bar(ref, "1", "200"), bar(week, "100", "100")).
		Add("GOOG", bar(ref, "1", "110"), bar(week, "100", "100"))
}

func symbols(rows []model.PerformanceRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Symbol
	}
	return out
}

func TestCompute_Sorting(t *testing.T) {
	c := load(t, sample())

	rows, err := Compute(c, Options{SortBy: "symbol", Reference: ref})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT", "NVDA"}, symbols(rows))

	rows, err = Compute(c, Options{SortBy: "1w", Reference: ref})
	require.NoError(t, err)
	// MSFT and GOOG tie and keep catalog order
	assert.Equal(t, []string{"NVDA", "MSFT", "GOOG", "AAPL"}, symbols(rows))
}

func TestCompute_AbsentSortsLast(t *testing.T) {
	src := sample().Add("IPO", bar(ref, "5", "5"))
	rows, err := Compute(load(t, src), Options{SortBy: "1w", Reference: ref, Missing: MissingAbsent})
	require.NoError(t, err)
	assert.Equal(t, "IPO", rows[len(rows)-1].Symbol)

	rows, err = Compute(load(t, src), Options{SortBy: "1w", Reference: ref})
	require.NoError(t, err)
	// zero-filled 0.00 sorts above AAPL's -10%
	assert.Equal(t, []string{"NVDA", "MSFT", "GOOG", "IPO", "AAPL"}, symbols(rows))
}

func TestCompute_Limit(t *testing.T) {
	c := load(t, sample())
	for _, tt := range []struct {
		limit, want int
	}{{1, 1}, {3, 3}, {4, 4}, {10, 4}, {0, 4}} {
		rows, err := Compute(c, Options{SortBy: "1w", Limit: tt.limit, Reference: ref})
		require.NoError(t, err)
		assert.Len(t, rows, tt.want, "limit %d", tt.limit)
	}

	rows, err := Compute(c, Options{SortBy: "1w", Limit: 2, Reference: ref})
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "MSFT"}, symbols(rows))

	_, err = Compute(c, Options{Limit: -1, Reference: ref})
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestCompute_UnknownKey(t *testing.T) {
	_, err := Compute(load(t, sample()), Options{SortBy: "3yr", Reference: ref})
	assert.ErrorIs(t, err, ErrUnknownKey)

	for _, key := range SortKeys() {
		assert.NoError(t, ValidateSortKey(key), key)
	}
}

func TestCompute_ZeroOpenAnchorTreatedAsMissing(t *testing.T) {
	src := collector.NewStaticSource().Add("ODD", bar(ref, "1", "10"), bar(ref.AddDate(0, 0, -7), "0", "0"))
	rows, err := Compute(load(t, src), Options{Reference: ref, Missing: MissingAbsent})
	require.NoError(t, err)
	assert.False(t, rows[0].Changes["1w"].Valid)
}

func TestFormat(t *testing.T) {
	rows, err := Compute(load(t, sample()), Options{SortBy: "symbol", Limit: 1, Reference: ref})
	require.NoError(t, err)
	rows = append(rows, model.PerformanceRow{Symbol: "NONE", Changes: nil})

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, rows))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "name        Max      5yr     1yr      6m      3m      2m      1m      2w      1w", lines[0])
	assert.Equal(t, "AAPL       0.00     0.00    0.00    0.00    0.00    0.00    0.00    0.00  -10.00", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "NONE        n/a"))
}

// Command stocks loads daily price history from per-symbol CSV files and
// prints performance tables or renders price charts.
//
// Usage:
//
//	stocks table 1yr --limit 10
//	stocks plot all --start 2023-01-01
//	stocks candle AAPL --start 2024-01-01 --end 2024-06-06
package main

import (
	"os"

	"StockLens/cmd/stocks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

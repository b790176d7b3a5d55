package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockLens/internal/catalog"
	"StockLens/internal/chart"
)

var candleRange rangeFlags

var candleCmd = &cobra.Command{
	Use:   "candle SYMBOL",
	Short: "Render a candlestick chart with volume bars",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandle,
}

func init() {
	candleRange.register(candleCmd)
}

func runCandle(cmd *cobra.Command, args []string) error {
	start, end, err := candleRange.resolve()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	sym := args[0]
	s, ok := cat.Get(sym)
	if !ok {
		return fmt.Errorf("%w: %s", catalog.ErrUnknownSymbol, sym)
	}
	records := s.Between(start, end)

	path, err := chart.NewRenderer(cfg.Chart.OutputDir).Candlestick(sym, records)
	if err != nil {
		return err
	}
	log.Info().Str("symbol", sym).Int("records", len(records)).Msg("candlestick plotted")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

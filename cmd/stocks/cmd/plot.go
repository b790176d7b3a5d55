package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockLens/internal/catalog"
	"StockLens/internal/chart"
)

var plotRange rangeFlags

var plotCmd = &cobra.Command{
	Use:   "plot all | SYMBOL...",
	Short: "Render a closing-price line chart",
	Long: `Render closing prices over the selected date range as an HTML line chart.
"all" plots every loaded symbol; otherwise only the named ones. Unknown symbols are logged and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlot,
}

func init() {
	plotRange.register(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	start, end, err := plotRange.resolve()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	symbols := args
	if len(args) == 1 && args[0] == "all" {
		symbols = cat.Symbols()
	}

	var lines []chart.Line
	for _, sym := range symbols {
		s, ok := cat.Get(sym)
		if !ok {
			continue
		}
		lines = append(lines, chart.Line{Symbol: sym, Records: s.Between(start, end)})
	}
	if len(lines) == 0 {
		return fmt.Errorf("%w: none of %v", catalog.ErrUnknownSymbol, symbols)
	}

	path, err := chart.NewRenderer(cfg.Chart.OutputDir).TimeSeries(lines)
	if err != nil {
		return err
	}
	log.Info().Int("symbols", len(lines)).Time("start", start).Time("end", end).Msg("time series plotted")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"StockLens/internal/report"
)

var tableLimit int

var tableCmd = &cobra.Command{
	Use:   "table [sort key]",
	Short: "Print percentage price change per look-back window",
	Long: fmt.Sprintf(`Print each symbol's percentage change from the anchor open price of every
look-back window to the most recent close.

Sort keys: %s (default from report.sort_by).
"symbol" sorts ascending by name, window keys sort descending by change.`, strings.Join(report.SortKeys(), ", ")),
	Args: cobra.MaximumNArgs(1),
	RunE: runTable,
}

func init() {
	tableCmd.Flags().IntVar(&tableLimit, "limit", 0, "print at most this many rows (0: all)")
}

func runTable(cmd *cobra.Command, args []string) error {
	opts, err := tableOptions(args, tableLimit)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	return printTable(cmd.OutOrStdout(), cat, opts)
}

// tableOptions validates the sort key and limit before anything is loaded.
func tableOptions(args []string, limit int) (report.Options, error) {
	sortBy := cfg.Report.SortBy
	if len(args) > 0 {
		sortBy = args[0]
	}
	if err := report.ValidateSortKey(sortBy); err != nil {
		return report.Options{}, err
	}
	if limit < 0 {
		return report.Options{}, fmt.Errorf("%w: %d", report.ErrInvalidLimit, limit)
	}
	return report.Options{
		SortBy:    sortBy,
		Limit:     limit,
		Reference: reference(),
		Missing:   report.MissingPolicy(cfg.Report.Missing),
	}, nil
}

func printTable(w io.Writer, cat report.Catalog, opts report.Options) error {
	rows, err := report.Compute(cat, opts)
	if err != nil {
		return err
	}
	return report.Format(w, rows)
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List loaded symbols with record counts and date span",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "symbol\trecords\tfirst\tlast")
		for sym, s := range cat.All() {
			first, last := "-", "-"
			if oldest, err := s.Oldest(); err == nil {
				first = oldest.Date.Format(dateFlagLayout)
			}
			if latest, err := s.Latest(); err == nil {
				last = latest.Date.Format(dateFlagLayout)
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", sym, s.Len(), first, last)
		}
		return tw.Flush()
	},
}

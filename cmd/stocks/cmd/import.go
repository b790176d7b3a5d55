package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"StockLens/internal/catalog"
	"StockLens/internal/store"
)

var importDB string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the CSV price files into the SQLite store",
	Long: `Load every <SYMBOL>.csv from data.dir and replace the matching symbols in the
SQLite database, so later runs can use data.source: sqlite.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "", "SQLite database path (default data.sqlite_path)")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := importDB
	if path == "" {
		path = cfg.Data.SQLitePath
	}

	cat, err := catalog.LoadDirectory(cfg.Data.Dir)
	if err != nil {
		return err
	}

	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	symbols, records, err := db.Import(cat)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d symbols (%d records) into %s\n", symbols, records, path)
	return nil
}

// Package cmd holds the stocks CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockLens/internal/catalog"
	"StockLens/internal/collector"
	"StockLens/internal/config"
	"StockLens/internal/logger"
	"StockLens/internal/series"
	"StockLens/internal/store"
)

const dateFlagLayout = "2006-01-02"

var (
	cfgFile string
	verbose bool

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Daily stock price performance tables and charts",
	Long: `stocks reads one <SYMBOL>.csv file per symbol and reports price performance.

Commands:
    table     [sort key]          - percentage change table over fixed look-back windows
    plot      all | SYMBOL...     - closing-price line chart
    candle    SYMBOL              - candlestick chart with volume bars
    symbols                       - list loaded symbols
    import                        - mirror the CSV data into SQLite
    watch     [sort key]          - re-print the table on a cron schedule
`,
	SilenceUsage:       true,
	PersistentPreRunE:  initConfig,
	PersistentPostRunE: closeLog,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/config.yaml or $CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(tableCmd, plotCmd, candleCmd, symbolsCmd, importCmd, watchCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}

	var err error
	if cfg, err = config.Load(path); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	if logCloser, err = logger.Init(logger.Config{
		Level:      level,
		Format:     cfg.Log.Format,
		File:       cfg.LogFile(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		return err
	}

	log.Logger = log.With().Str("run_id", uuid.NewString()).Logger()
	log.Info().Str("command", cmd.CommandPath()).Strs("args", args).
		Str("config", path).Str("reference_date", cfg.ReferenceDate).Msg("started")
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	return logCloser.Close()
}

// reference returns the configured reference date; Validate has already checked it.
func reference() time.Time {
	ref, _ := cfg.Reference()
	return ref
}

// loadCatalog loads every symbol from the configured source.
func loadCatalog() (*catalog.Catalog, error) {
	switch cfg.Data.Source {
	case config.SourceSQLite:
		db, err := store.Open(cfg.Data.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", catalog.ErrIO, err)
		}
		defer db.Close()
		return catalog.Load(db)
	default:
		return catalog.Load(collector.NewCSVSource(cfg.Data.Dir))
	}
}

// rangeFlags holds --start/--end for chart commands.
type rangeFlags struct {
	start, end string
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.start, "start", "", "start date, YYYY-MM-DD (default: reference date minus 10 years)")
	cmd.Flags().StringVar(&r.end, "end", "", "end date, YYYY-MM-DD (default: reference date)")
}

// resolve parses the flags and checks the bounds against the reference date.
func (r *rangeFlags) resolve() (start, end time.Time, err error) {
	if start, err = parseDateFlag("start", r.start); err != nil {
		return
	}
	if end, err = parseDateFlag("end", r.end); err != nil {
		return
	}
	return series.ResolveRange(reference(), start, end)
}

func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFlagLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s %q: want YYYY-MM-DD", name, v)
	}
	return t, nil
}

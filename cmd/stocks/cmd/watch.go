package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"StockLens/internal/scheduler"
)

var (
	watchLimit int
	watchCron  string
	watchNow   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [sort key]",
	Short: "Re-load the data and print the table on a cron schedule",
	Long: `Re-load all price data and print the performance table on every tick of a
cron schedule (six fields, seconds first). Each run works on a fresh catalog.
Stops on SIGINT/SIGTERM.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchLimit, "limit", 0, "print at most this many rows (0: all)")
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron spec (default schedule.watch_cron)")
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "also run once immediately")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := tableOptions(args, watchLimit)
	if err != nil {
		return err
	}
	spec := watchCron
	if spec == "" {
		spec = cfg.Schedule.WatchCron
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	job := func(ctx context.Context) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		zerolog.Ctx(ctx).Info().Int("symbols", cat.Len()).Msg("catalog reloaded")
		return printTable(out, cat, opts)
	}

	sched := scheduler.NewScheduler(ctx)
	if err := sched.Register("table", spec, job); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if watchNow {
		if err := sched.RunNow("table"); err != nil {
			return err
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	cancel()
	return nil
}

package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/watch"
)

var (
	watchCollection string
	watchTimeout    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the board for changes from other instances",
	Long: `Subscribe to the board's change channel and print refreshed counts
whenever any instance saves a collection. Snapshots also refresh on a
periodic tick so a missed notification only delays a refresh.

With --collection the command instead blocks until that one collection
changes (or the timeout expires) and exits. An empty --collection with
--timeout waits for any change at all.

Examples:
  opsboard watch
  opsboard watch --collection workorders --timeout 2m`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchCollection, "collection", "", "Block until this collection changes, then exit")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Give up waiting after this long (used with --collection)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watchCollection != "" || watchTimeout > 0 {
		changed, err := watch.WaitForCollectionChange(ctx, client, watchCollection, watchTimeout)
		if err != nil {
			return printer.Failure(err)
		}
		printer.Success("collection %s changed\n", changed)
		return nil
	}

	watcher, err := watch.New(ctx, client, cfg.RefreshInterval())
	if err != nil {
		return printer.Failure(err)
	}
	defer watcher.Close()

	printer.Info("watching instance %s, refresh every %s (ctrl-c to stop)\n", cfg.Instance, cfg.RefreshInterval())

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-watcher.Snapshots():
			if !ok {
				return nil
			}
			printer.Printf("%s  %d work order(s), %d tech(s), %d cost(s), %d proposal(s), %d file(s), %d event(s)\n",
				snap.LoadedAt.Format("15:04:05"),
				len(snap.WorkOrders), len(snap.Techs), len(snap.Costs),
				len(snap.Proposals), len(snap.Files), len(snap.Calendar))
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			printer.Warning("subscription error: %v\n", err)
		}
	}
}

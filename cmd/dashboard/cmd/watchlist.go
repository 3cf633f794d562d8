package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchlistCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watchlist",
		Short: "Print the last close of every active watchlist symbol",
		Long: `Fetches each active symbol in sidebar order. Requests are paced by
SNAPSHOT_RATE_LIMIT (per minute) to stay under the upstream quota.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.withDB(ctx, false)
			if err != nil {
				return err
			}

			codes, err := c.Symbols.ListActiveCodes(ctx)
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				fmt.Fprintln(a.out, "watchlist is empty; run `dashboard symbols seed` first")
				return nil
			}

			snaps, err := c.Snapshots.SnapshotAll(ctx, codes)
			if rerr := a.renderer().Snapshots(snaps); rerr != nil {
				return rerr
			}
			return err
		},
	}
}

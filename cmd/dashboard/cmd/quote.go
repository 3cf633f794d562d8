package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

func newQuoteCmd(a *app) *cobra.Command {
	var (
		interval string
		rows     int
	)

	cmd := &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Print the intraday time series of one symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			collector := diagnostics.NewCollector()
			ctx = diagnostics.NewContext(ctx, collector)

			table, err := a.usecases(ctx).Quotes.FetchQuotes(ctx, strings.TrimSpace(args[0]), interval)
			if err != nil && !fetcherr.IsFetchFailure(err) {
				return err
			}

			r := a.renderer()
			r.Diagnostics(collector.Items())
			if table.Empty() {
				return nil
			}
			if rows > 0 {
				table = table.Head(rows)
			}
			return r.Table(table)
		},
	}
	cmd.Flags().StringVarP(&interval, "interval", "i", "", "1min, 5min, 15min, 30min or 60min (default 1min)")
	cmd.Flags().IntVarP(&rows, "rows", "n", 0, "print only the first N rows (0 prints all)")
	return cmd
}

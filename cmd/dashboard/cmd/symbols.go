package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSymbolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Manage the watchlist table",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create the table and insert the default watchlist (existing codes are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.withDB(ctx, true)
			if err != nil {
				return err
			}
			n, err := c.Symbols.SeedDefaults(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "inserted %d symbols\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active symbols in sidebar order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.withDB(ctx, false)
			if err != nil {
				return err
			}
			symbols, err := c.Symbols.ListActiveSymbols(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, s := range symbols {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", s.Code, s.Name, s.Exchange)
			}
			return tw.Flush()
		},
	})
	return cmd
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard for one symbol",
		Long: `Runs one render cycle: quotes for the symbol, then finance news.

Examples:
  go run ./cmd/dashboard render               # AAPL
  go run ./cmd/dashboard render --symbol TSLA`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.usecases(cmd.Context()).Dashboard.Render(cmd.Context(), strings.TrimSpace(symbol))
			if err != nil {
				return err
			}
			return a.renderer().View(view)
		},
	}
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "stock symbol (default AAPL)")
	return cmd
}

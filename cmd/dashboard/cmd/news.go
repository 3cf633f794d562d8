package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	newsentity "finance_dashboard/internal/feature/news/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

func newNewsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "news [QUERY]",
		Short: "Print the latest articles (default query: finance)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}

			ctx := cmd.Context()
			collector := diagnostics.NewCollector()
			ctx = diagnostics.NewContext(ctx, collector)

			articles, err := a.usecases(ctx).News.FetchNews(ctx, query)
			if err != nil && !fetcherr.IsFetchFailure(err) {
				return err
			}

			r := a.renderer()
			r.Diagnostics(collector.Items())
			if limit > 0 {
				articles = newsentity.Limit(articles, limit)
			}
			r.Articles(articles)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "number of articles to print (0 prints all)")
	return cmd
}

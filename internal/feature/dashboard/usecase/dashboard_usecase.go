// Package usecase はダッシュボード1回分の描画サイクルを組み立てます。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"finance_dashboard/internal/feature/dashboard/domain/entity"
	newsentity "finance_dashboard/internal/feature/news/domain/entity"
	quoteentity "finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

// QuoteFetcher は株価取得のインターフェイスです。
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbol, interval string) (quoteentity.QuoteTable, error)
}

// NewsFetcher はニュース取得のインターフェイスです。
type NewsFetcher interface {
	FetchNews(ctx context.Context, query string) ([]newsentity.Article, error)
}

// DashboardUsecase runs one render cycle: quotes, then news, strictly in sequence.
type DashboardUsecase struct {
	quotes    QuoteFetcher
	news      NewsFetcher
	interval  string
	newsQuery string
}

// NewDashboardUsecase は新しい DashboardUsecase を作成します。
// interval と newsQuery が空の場合は各フェッチャーのデフォルトが使われます。
func NewDashboardUsecase(quotes QuoteFetcher, news NewsFetcher, interval, newsQuery string) *DashboardUsecase {
	return &DashboardUsecase{quotes: quotes, news: news, interval: interval, newsQuery: newsQuery}
}

// Render は指定銘柄のダッシュボードを組み立てます。
//
// FetchFailureは致命的ではなく、該当部分を空にしてDiagnosticsに1件ずつ記録します。
// トランスポートエラーはサイクルを中断してエラーを返します。
func (u *DashboardUsecase) Render(ctx context.Context, symbol string) (entity.View, error) {
	if symbol == "" {
		symbol = entity.DefaultSymbol
	}

	collector := diagnostics.NewCollector()
	ctx = diagnostics.NewContext(ctx, collector)

	table, err := u.quotes.FetchQuotes(ctx, symbol, u.interval)
	if err != nil && !fetcherr.IsFetchFailure(err) {
		return entity.View{}, fmt.Errorf("fetch quotes for %s: %w", symbol, err)
	}

	articles, err := u.news.FetchNews(ctx, u.newsQuery)
	if err != nil && !fetcherr.IsFetchFailure(err) {
		return entity.View{}, fmt.Errorf("fetch news: %w", err)
	}

	view := entity.View{
		Symbol:      symbol,
		Interval:    table.Interval,
		Quotes:      table,
		Preview:     table.Head(entity.PreviewRows),
		AllArticles: articles,
		Articles:    newsentity.Limit(articles, entity.ArticleLimit),
		Diagnostics: collector.Items(),
	}

	if table.HasColumn(quoteentity.ColumnClose) {
		series, err := table.Series(quoteentity.ColumnClose)
		if err != nil {
			slog.WarnContext(ctx, "close series not chartable", "symbol", symbol, "error", err)
		} else {
			view.CloseSeries = series
		}
	}
	return view, nil
}

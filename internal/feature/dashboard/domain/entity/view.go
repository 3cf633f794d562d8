// Package entity defines what one dashboard render cycle produces.
package entity

import (
	newsentity "finance_dashboard/internal/feature/news/domain/entity"
	quoteentity "finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
)

const (
	// DefaultSymbol はサイドバーの初期銘柄です。
	DefaultSymbol = "AAPL"
	// PreviewRows は株価テーブルのプレビュー行数です。
	PreviewRows = 5
	// ArticleLimit は表示する記事数です。
	ArticleLimit = 5
)

// View is the presentation-ready result of one render cycle.
// Quotes and AllArticles keep everything the fetchers returned; the
// truncated Preview and Articles are what the page shows.
type View struct {
	Symbol      string
	Interval    string
	Quotes      quoteentity.QuoteTable
	Preview     quoteentity.QuoteTable
	CloseSeries []quoteentity.Point
	AllArticles []newsentity.Article
	Articles    []newsentity.Article
	Diagnostics []diagnostics.Diagnostic
}

// HasQuotes は株価テーブルに行があるかを返します。
func (v View) HasQuotes() bool { return !v.Quotes.Empty() }

// HasArticles は表示する記事があるかを返します。
func (v View) HasArticles() bool { return len(v.Articles) > 0 }

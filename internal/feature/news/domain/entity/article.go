// Package entity defines the domain models for the news feature.
package entity

// Source identifies the publisher of an Article.
type Source struct {
	ID   string
	Name string
}

// Article is one news item as returned by the upstream search.
// PublishedAt is kept as the upstream string; it only drives upstream ordering.
type Article struct {
	Source      Source
	Author      string
	Title       string
	Description string // 空の場合あり
	URL         string
	URLToImage  string
	PublishedAt string
	Content     string
}

// Limit は先頭 n 件を返します。表示件数の切り詰めは表示層の責務で、フェッチ側では使いません。
func Limit(articles []Article, n int) []Article {
	if n < 0 {
		n = 0
	}
	if n > len(articles) {
		n = len(articles)
	}
	return articles[:n:n]
}

// Package dto defines data transfer objects for the news HTTP API.
package dto

import (
	"finance_dashboard/internal/feature/news/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
)

// ArticleResponse is one article in an API response.
type ArticleResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at"`
}

// NewsResponse is the body of GET /news. Articles are not truncated.
type NewsResponse struct {
	Query       string                   `json:"query"`
	Articles    []ArticleResponse        `json:"articles"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
}

// NewArticles は記事一覧をDTOに変換します。順序と件数はそのままです。
func NewArticles(articles []entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleResponse{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return out
}

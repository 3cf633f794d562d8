package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"finance_dashboard/internal/feature/news/domain/entity"
	"finance_dashboard/internal/feature/news/usecase"
	"finance_dashboard/internal/platform/externalapi/newsapi/dto"
	platformhttp "finance_dashboard/internal/platform/http"
	"finance_dashboard/internal/shared/fetcherr"
)

// ProviderName は使用量計測などで使うプロバイダー名です。
const ProviderName = "newsapi"

// NewsAPIClient はNewsAPIから記事を検索するNewsProvider実装です。
type NewsAPIClient struct {
	cfg    Config
	client *http.Client
}

// NewsAPIClientがNewsProviderを実装していることをコンパイル時に検証します。
var _ usecase.NewsProvider = (*NewsAPIClient)(nil)

// NewNewsAPIClient は指定された設定とHTTPクライアントでNewsAPIClientの新しいインスタンスを生成します。
func NewNewsAPIClient(cfg Config, client *http.Client) *NewsAPIClient {
	return &NewsAPIClient{cfg: cfg, client: client}
}

// Search は /v2/everything の最初のページを取得します。
//
// 成否はHTTPステータスではなく "articles" キーの有無で判定します。
// キーが無い場合は *fetcherr.FetchFailure を返します。
func (c *NewsAPIClient) Search(ctx context.Context, query string) ([]entity.Article, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("apiKey", c.cfg.APIKey)
	if c.cfg.Language != "" {
		q.Set("language", c.cfg.Language)
	}
	if c.cfg.SortBy != "" {
		q.Set("sortBy", c.cfg.SortBy)
	}

	u := fmt.Sprintf("%s/v2/everything?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", platformhttp.RedactError(err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body dto.EverythingResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("newsapi decode (http %d): %w", res.StatusCode, err)
	}
	if !body.HasArticles() {
		return nil, fetcherr.New(fetcherr.KindNewsUnavailable, body.UpstreamMessage())
	}

	items, err := body.DecodeArticles()
	if err != nil {
		return nil, fmt.Errorf("newsapi decode articles: %w", err)
	}

	articles := make([]entity.Article, 0, len(items))
	for _, a := range items {
		articles = append(articles, toArticle(a))
	}
	return articles, nil
}

func toArticle(a dto.ArticleDTO) entity.Article {
	return entity.Article{
		Source:      entity.Source{ID: deref(a.Source.ID), Name: a.Source.Name},
		Author:      deref(a.Author),
		Title:       a.Title,
		Description: deref(a.Description),
		URL:         a.URL,
		URLToImage:  deref(a.URLToImage),
		PublishedAt: a.PublishedAt,
		Content:     deref(a.Content),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Package usecase はニュース記事検索のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"finance_dashboard/internal/feature/news/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

const (
	// DefaultQuery はニュース検索のデフォルトクエリです。
	DefaultQuery = "finance"

	// NewsUnavailableMessage はニュース取得失敗時に表示層へ渡す文言です。
	NewsUnavailableMessage = "Error fetching news. Check the API key."
)

// NewsProvider は外部APIから記事を検索するリポジトリのインターフェイスです。
type NewsProvider interface {
	// Search returns a *fetcherr.FetchFailure when the response has no "articles" key.
	Search(ctx context.Context, query string) ([]entity.Article, error)
}

// NewsUsecase はニュース取得のユースケースを定義します。
type NewsUsecase struct {
	news NewsProvider
}

// NewNewsUsecase はNewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(news NewsProvider) *NewsUsecase {
	return &NewsUsecase{news: news}
}

// FetchNews は記事一覧の最初のページを1回だけ取得し、upstreamの順序・件数のまま返します。
// 表示件数の切り詰めは行いません。
func (u *NewsUsecase) FetchNews(ctx context.Context, query string) ([]entity.Article, error) {
	if query == "" {
		query = DefaultQuery
	}

	articles, err := u.news.Search(ctx, query)
	if err != nil {
		var ff *fetcherr.FetchFailure
		if errors.As(err, &ff) {
			diagnostics.Emit(ctx, diagnostics.Diagnostic{
				Kind:    ff.Kind,
				Message: NewsUnavailableMessage,
				Detail:  ff.Detail,
			})
			return []entity.Article{}, err
		}
		return nil, err
	}
	if articles == nil {
		articles = []entity.Article{}
	}
	return articles, nil
}

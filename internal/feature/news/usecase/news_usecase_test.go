package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_dashboard/internal/feature/news/domain/entity"
	"finance_dashboard/internal/feature/news/usecase"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

// mockNewsProvider はNewsProviderインターフェースのモック実装です。
type mockNewsProvider struct {
	SearchFunc  func(ctx context.Context, query string) ([]entity.Article, error)
	SearchCalls int
	Queries     []string
}

func (m *mockNewsProvider) Search(ctx context.Context, query string) ([]entity.Article, error) {
	m.SearchCalls++
	m.Queries = append(m.Queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, errors.New("SearchFunc is not implemented")
}

func makeArticles(n int) []entity.Article {
	out := make([]entity.Article, n)
	for i := range out {
		out[i] = entity.Article{
			Title:       fmt.Sprintf("headline %d", i),
			URL:         fmt.Sprintf("https://example.com/%d", i),
			PublishedAt: fmt.Sprintf("2024-01-01T10:%02d:00Z", 59-i),
		}
	}
	return out
}

func TestNewsUsecase_FetchNews(t *testing.T) {
	errTransport := errors.New("dial tcp: i/o timeout")

	tests := []struct {
		name            string
		query           string
		wantQuery       string
		result          []entity.Article
		resultErr       error
		wantLen         int
		wantErr         error
		wantDiagnostics int
	}{
		{
			name:      "default query, 12 articles pass through untruncated",
			query:     "",
			wantQuery: "finance",
			result:    makeArticles(12),
			wantLen:   12,
		},
		{
			name:      "custom query",
			query:     "earnings",
			wantQuery: "earnings",
			result:    makeArticles(3),
			wantLen:   3,
		},
		{
			name:      "empty articles list is success",
			query:     "finance",
			wantQuery: "finance",
			result:    []entity.Article{},
			wantLen:   0,
		},
		{
			name:      "nil articles normalized to empty",
			query:     "finance",
			wantQuery: "finance",
			result:    nil,
			wantLen:   0,
		},
		{
			name:            "fetch failure emits one diagnostic",
			query:           "finance",
			wantQuery:       "finance",
			resultErr:       fetcherr.New(fetcherr.KindNewsUnavailable, "apiKeyInvalid: Your API key is invalid"),
			wantErr:         fetcherr.ErrNewsUnavailable,
			wantDiagnostics: 1,
		},
		{
			name:      "transport error propagated",
			query:     "finance",
			wantQuery: "finance",
			resultErr: errTransport,
			wantErr:   errTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNewsProvider{
				SearchFunc: func(ctx context.Context, query string) ([]entity.Article, error) {
					return tt.result, tt.resultErr
				},
			}
			uc := usecase.NewNewsUsecase(mock)
			collector := diagnostics.NewCollector()

			articles, err := uc.FetchNews(diagnostics.NewContext(context.Background(), collector), tt.query)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, articles)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Len(t, articles, tt.wantLen)
			assert.Equal(t, []string{tt.wantQuery}, mock.Queries)
			assert.Equal(t, tt.wantDiagnostics, collector.Len())
		})
	}
}

func TestNewsUsecase_PreservesOrder(t *testing.T) {
	in := makeArticles(4)
	mock := &mockNewsProvider{
		SearchFunc: func(ctx context.Context, query string) ([]entity.Article, error) {
			return in, nil
		},
	}

	got, err := usecase.NewNewsUsecase(mock).FetchNews(context.Background(), "finance")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestNewsUsecase_FailureDiagnosticContent(t *testing.T) {
	mock := &mockNewsProvider{
		SearchFunc: func(ctx context.Context, query string) ([]entity.Article, error) {
			return nil, fetcherr.New(fetcherr.KindNewsUnavailable, "apiKeyMissing")
		},
	}
	collector := diagnostics.NewCollector()

	articles, err := usecase.NewNewsUsecase(mock).FetchNews(diagnostics.NewContext(context.Background(), collector), "")
	require.Error(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)

	items := collector.Items()
	require.Len(t, items, 1)
	assert.Equal(t, fetcherr.KindNewsUnavailable, items[0].Kind)
	assert.Equal(t, usecase.NewsUnavailableMessage, items[0].Message)
	assert.Equal(t, "apiKeyMissing", items[0].Detail)
}

func TestNewsUsecase_NoMemoization(t *testing.T) {
	mock := &mockNewsProvider{
		SearchFunc: func(ctx context.Context, query string) ([]entity.Article, error) {
			return makeArticles(2), nil
		},
	}
	uc := usecase.NewNewsUsecase(mock)

	first, err := uc.FetchNews(context.Background(), "finance")
	require.NoError(t, err)
	second, err := uc.FetchNews(context.Background(), "finance")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, mock.SearchCalls)
}

package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_dashboard/internal/shared/fetcherr"
)

func newTestServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func articlesBody(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"source":{"id":null,"name":"Wire"},"author":null,"title":"headline %d","description":"desc %d","url":"https://example.com/%d","urlToImage":null,"publishedAt":"2024-01-01T10:%02d:00Z","content":null}`, i, i, i, 59-i)
	}
	return fmt.Sprintf(`{"status":"ok","totalResults":%d,"articles":[%s]}`, n, strings.Join(items, ","))
}

func testConfig(baseURL string) Config {
	return Config{APIKey: "news-key", BaseURL: baseURL, Language: "en", SortBy: "publishedAt", Timeout: 5 * time.Second}
}

func TestNewsAPIClient_Search_Success(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, articlesBody(12), func(r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "finance", q.Get("q"))
		assert.Equal(t, "news-key", q.Get("apiKey"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
	})

	client := NewNewsAPIClient(testConfig(server.URL), server.Client())
	articles, err := client.Search(context.Background(), "finance")
	require.NoError(t, err)

	// 件数・順序はそのまま
	require.Len(t, articles, 12)
	assert.Equal(t, "headline 0", articles[0].Title)
	assert.Equal(t, "headline 11", articles[11].Title)
	assert.Equal(t, "desc 3", articles[3].Description)
	assert.Equal(t, "https://example.com/5", articles[5].URL)
	assert.Equal(t, "2024-01-01T10:59:00Z", articles[0].PublishedAt)
	assert.Equal(t, "Wire", articles[0].Source.Name)
	assert.Empty(t, articles[0].Source.ID)
	assert.Empty(t, articles[0].Author)
}

func TestNewsAPIClient_Search_EmptyArticles(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"status":"ok","totalResults":0,"articles":[]}`,
		`{"status":"ok","totalResults":0,"articles":null}`,
	} {
		server := newTestServer(t, http.StatusOK, body, nil)
		client := NewNewsAPIClient(testConfig(server.URL), server.Client())

		articles, err := client.Search(context.Background(), "finance")
		require.NoError(t, err, body)
		assert.NotNil(t, articles, body)
		assert.Empty(t, articles, body)
	}
}

func TestNewsAPIClient_Search_FetchFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "invalid api key",
			status:     http.StatusUnauthorized,
			body:       `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid or incorrect."}`,
			wantDetail: "apiKeyInvalid: Your API key is invalid or incorrect.",
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"status":"error","code":"rateLimited"}`,
			wantDetail: "rateLimited",
		},
		{
			name:   "no articles key",
			status: http.StatusOK,
			body:   `{"status":"ok"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, tt.status, tt.body, nil)
			client := NewNewsAPIClient(testConfig(server.URL), server.Client())

			articles, err := client.Search(context.Background(), "finance")
			require.Error(t, err)
			assert.Empty(t, articles)
			assert.True(t, errors.Is(err, fetcherr.ErrNewsUnavailable))

			var ff *fetcherr.FetchFailure
			require.True(t, errors.As(err, &ff))
			assert.Equal(t, tt.wantDetail, ff.Detail)
		})
	}
}

func TestNewsAPIClient_Search_ArticlesWithErrorStatus(t *testing.T) {
	t.Parallel()

	// HTTPステータスではなくキーの有無で判定する
	server := newTestServer(t, http.StatusInternalServerError, articlesBody(1), nil)
	client := NewNewsAPIClient(testConfig(server.URL), server.Client())

	articles, err := client.Search(context.Background(), "finance")
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestNewsAPIClient_Search_DecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", `<html></html>`, "newsapi decode (http 200)"},
		{"articles wrong type", `{"articles": "nope"}`, "newsapi decode articles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, http.StatusOK, tt.body, nil)
			client := NewNewsAPIClient(testConfig(server.URL), server.Client())

			_, err := client.Search(context.Background(), "finance")
			require.Error(t, err)
			assert.False(t, fetcherr.IsFetchFailure(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewsAPIClient_Search_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, articlesBody(1), nil)
	client := NewNewsAPIClient(testConfig(server.URL), server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "finance")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "abc")
	t.Setenv("NEWS_API_BASE_URL", "")

	cfg := LoadConfig()
	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "publishedAt", cfg.SortBy)
}

// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_dashboard/internal/api"
	"finance_dashboard/internal/feature/news/domain/entity"
	"finance_dashboard/internal/feature/news/transport/http/dto"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

// NewsUsecase はニュース取得のユースケースインターフェースです。
type NewsUsecase interface {
	FetchNews(ctx context.Context, query string) ([]entity.Article, error)
}

// NewsHandler はニュース記事のHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は新しい NewsHandler を作成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// GetNews は記事一覧の最初のページをそのままJSONで返します。
//
// エンドポイント例:
// GET /news?q=earnings
func (h *NewsHandler) GetNews(c *gin.Context) {
	query := c.Query("q")

	collector := diagnostics.NewCollector()
	ctx := diagnostics.NewContext(c.Request.Context(), collector)

	articles, err := h.uc.FetchNews(ctx, query)
	if err != nil && !fetcherr.IsFetchFailure(err) {
		slog.ErrorContext(ctx, "news fetch failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewsResponse{
		Query:       query,
		Articles:    dto.NewArticles(articles),
		Diagnostics: collector.Items(),
	})
}

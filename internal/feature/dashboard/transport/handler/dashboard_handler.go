// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finance_dashboard/internal/api"
	"finance_dashboard/internal/feature/dashboard/domain/entity"
	"finance_dashboard/internal/feature/dashboard/transport/http/dto"
	"finance_dashboard/internal/feature/dashboard/transport/web"
	symbolentity "finance_dashboard/internal/feature/symbollist/domain/entity"
)

// DashboardUsecase はダッシュボード描画のユースケースインターフェースです。
type DashboardUsecase interface {
	Render(ctx context.Context, symbol string) (entity.View, error)
}

// WatchlistLister はサイドバーに表示する銘柄一覧を返します。
type WatchlistLister interface {
	ListActiveSymbols(ctx context.Context) ([]symbolentity.Symbol, error)
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc        DashboardUsecase
	watchlist WatchlistLister // nil のときサイドバーに一覧を出さない
}

// NewDashboardHandler は新しい DashboardHandler を作成します。
func NewDashboardHandler(uc DashboardUsecase, watchlist WatchlistLister) *DashboardHandler {
	return &DashboardHandler{uc: uc, watchlist: watchlist}
}

// pageData は dashboard.html に渡すデータです。
type pageData struct {
	View      entity.View
	Chart     Chart
	Watchlist []symbolentity.Symbol
}

// symbolQuery はサイドバー入力の前後空白を落とします。空なら usecase 側で AAPL になります。
func symbolQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("symbol"))
}

// JSON は描画結果をJSONで返します。
//
// エンドポイント例:
// GET /dashboard?symbol=TSLA
func (h *DashboardHandler) JSON(c *gin.Context) {
	view, err := h.uc.Render(c.Request.Context(), symbolQuery(c))
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "dashboard render failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardResponse(view))
}

// Page はHTMLのダッシュボードを返します。テンプレートはルーター側で登録されている必要があります。
//
// エンドポイント例:
// GET /?symbol=TSLA
func (h *DashboardHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.uc.Render(ctx, symbolQuery(c))
	if err != nil {
		slog.ErrorContext(ctx, "dashboard render failed", "error", err)
		c.String(http.StatusBadGateway, "upstream request failed: %s", err.Error())
		return
	}

	data := pageData{View: view, Chart: NewChart(view.CloseSeries)}
	if h.watchlist != nil {
		// サイドバーは補助情報なので、取得失敗はログのみ
		symbols, err := h.watchlist.ListActiveSymbols(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to load watchlist", "error", err)
		}
		data.Watchlist = symbols
	}
	c.HTML(http.StatusOK, web.PageTemplate, data)
}

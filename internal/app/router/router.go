// Package router はHTTPルーティングを組み立てます。
package router

import (
	"github.com/gin-gonic/gin"

	dashboardhandler "finance_dashboard/internal/feature/dashboard/transport/handler"
	"finance_dashboard/internal/feature/dashboard/transport/web"
	newshandler "finance_dashboard/internal/feature/news/transport/handler"
	quoteshandler "finance_dashboard/internal/feature/quotes/transport/handler"
	symbollisthandler "finance_dashboard/internal/feature/symbollist/transport/handler"
	"finance_dashboard/internal/platform/http/handler"
	"finance_dashboard/internal/platform/http/middleware"
)

// Handlers はルーターに登録するハンドラー群です。Symbols は nil でもよい（ウォッチリスト無効）。
type Handlers struct {
	Dashboard *dashboardhandler.DashboardHandler
	Quotes    *quoteshandler.QuotesHandler
	News      *newshandler.NewsHandler
	Symbols   *symbollisthandler.SymbolHandler
	Usage     *handler.UsageHandler
	Readiness *handler.Readiness
}

// NewRouter creates the gin engine. extra middleware (e.g. CORS) runs after request ID and access logging.
func NewRouter(h Handlers, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog("/healthz", "/readyz"), gin.Recovery())
	r.Use(extra...)
	r.SetHTMLTemplate(web.Templates())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", h.Readiness.Handle)

	// ダッシュボード
	r.GET("/", h.Dashboard.Page)
	r.GET("/dashboard", h.Dashboard.JSON)

	r.GET("/quotes/:symbol", h.Quotes.GetQuotes)
	r.GET("/news", h.News.GetNews)
	r.GET("/usage", h.Usage.Handle)
	if h.Symbols != nil {
		r.GET("/symbols", h.Symbols.List)
	}

	return r
}

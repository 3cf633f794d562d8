package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"finance_dashboard/internal/app/config"
	"finance_dashboard/internal/app/di"
	"finance_dashboard/internal/app/router"
	dashboardhandler "finance_dashboard/internal/feature/dashboard/transport/handler"
	newshandler "finance_dashboard/internal/feature/news/transport/handler"
	quoteshandler "finance_dashboard/internal/feature/quotes/transport/handler"
	symbollisthandler "finance_dashboard/internal/feature/symbollist/transport/handler"
	"finance_dashboard/internal/platform/db"
	"finance_dashboard/internal/platform/externalapi/alphavantage"
	"finance_dashboard/internal/platform/externalapi/newsapi"
	"finance_dashboard/internal/platform/http/handler"
	"finance_dashboard/internal/platform/logging"
	"finance_dashboard/internal/platform/redis"
)

func main() {
	// .env が無くても環境変数だけで起動できる
	_ = godotenv.Load()

	cfg := config.Load()

	logCloser, err := logging.Init(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := logCloser.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
	}()

	if cfg.AlphaVantage.APIKey == "" || cfg.NewsAPI.APIKey == "" {
		slog.Warn("API key not set; upstream responses will surface as diagnostics",
			"alpha_vantage", cfg.AlphaVantage.APIKey != "", "newsapi", cfg.NewsAPI.APIKey != "")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readiness := handler.NewReadiness(0)

	// db（ウォッチリスト）。接続できなくてもダッシュボードは動かす
	var gdb *gorm.DB
	if tmp, err := db.OpenDB(cfg.DB); err != nil {
		slog.Warn("database unavailable, watchlist disabled", "error", err)
	} else {
		gdb = tmp
		readiness.Add("database", db.Ping(gdb))
		defer func() {
			if sqlDB, err := gdb.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					slog.Error("failed to close database", "error", err)
				}
			}
		}()
	}

	// Redis（使用量の計測）
	rdb := di.OpenRedis(ctx, cfg.Redis)
	if rdb != nil {
		readiness.Add("redis", redis.Ping(rdb))
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	c := di.NewContainer(cfg, gdb, rdb)

	handlers := router.Handlers{
		Quotes:    quoteshandler.NewQuotesHandler(c.Quotes),
		News:      newshandler.NewNewsHandler(c.News),
		Usage:     handler.NewUsageHandler(c.Meter, alphavantage.ProviderName, newsapi.ProviderName),
		Readiness: readiness,
	}
	if c.Symbols != nil {
		handlers.Symbols = symbollisthandler.NewSymbolHandler(c.Symbols)
		handlers.Dashboard = dashboardhandler.NewDashboardHandler(c.Dashboard, c.Symbols)
	} else {
		handlers.Dashboard = dashboardhandler.NewDashboardHandler(c.Dashboard, nil)
	}

	var extra []gin.HandlerFunc
	if len(cfg.Server.AllowedOrigins) > 0 {
		slog.Info("CORS enabled", "origins", cfg.Server.AllowedOrigins)
		extra = append(extra, cors.New(cors.Config{
			AllowOrigins:  cfg.Server.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders: []string{"X-Request-ID"},
		}))
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router.NewRouter(handlers, extra...),
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}

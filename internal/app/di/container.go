package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"finance_dashboard/internal/app/config"
	dashboardusecase "finance_dashboard/internal/feature/dashboard/usecase"
	newsusecase "finance_dashboard/internal/feature/news/usecase"
	quoteusecase "finance_dashboard/internal/feature/quotes/usecase"
	symboladapters "finance_dashboard/internal/feature/symbollist/adapters"
	symbolusecase "finance_dashboard/internal/feature/symbollist/usecase"
	"finance_dashboard/internal/platform/usage"
	"finance_dashboard/internal/shared/ratelimiter"
)

// Container はサーバーとCLIが共有するユースケース群です。
type Container struct {
	Quotes    *quoteusecase.QuotesUsecase
	News      *newsusecase.NewsUsecase
	Dashboard *dashboardusecase.DashboardUsecase
	Snapshots *quoteusecase.SnapshotUsecase
	Symbols   *symbolusecase.SymbolUsecase // db が nil のとき nil
	Meter     *usage.Meter
}

// NewContainer wires every usecase from cfg. db and rdb are optional:
// without db there is no watchlist, without rdb upstream calls are not metered.
func NewContainer(cfg config.Config, db *gorm.DB, rdb *redis.Client) *Container {
	meter := usage.NewMeter(rdb, "usage")

	quotesUC := quoteusecase.NewQuotesUsecase(NewMarket(cfg.AlphaVantage, meter))
	newsUC := newsusecase.NewNewsUsecase(NewNewsSource(cfg.NewsAPI, meter))

	c := &Container{
		Quotes:    quotesUC,
		News:      newsUC,
		Dashboard: dashboardusecase.NewDashboardUsecase(quotesUC, newsUC, cfg.Dashboard.Interval, cfg.Dashboard.NewsQuery),
		Snapshots: quoteusecase.NewSnapshotUsecase(
			quotesUC,
			ratelimiter.NewRateLimiter(cfg.Dashboard.SnapshotLimit, time.Minute),
			cfg.Dashboard.Interval,
		),
		Meter: meter,
	}
	if db != nil {
		c.Symbols = symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolRepository(db))
	}
	return c
}

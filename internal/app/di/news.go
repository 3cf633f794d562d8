package di

import (
	"finance_dashboard/internal/feature/news/usecase"
	"finance_dashboard/internal/platform/externalapi/newsapi"
	platformhttp "finance_dashboard/internal/platform/http"
	"finance_dashboard/internal/platform/usage"
)

// NewNewsSource creates a NewsAPI NewsProvider wrapped with the usage meter.
func NewNewsSource(cfg newsapi.Config, meter *usage.Meter) usecase.NewsProvider {
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	client := newsapi.NewNewsAPIClient(cfg, httpClient)
	return usage.NewMeteredNewsProvider(client, meter, newsapi.ProviderName)
}

// Package di provides dependency injection factories for creating application components.
package di

import (
	"finance_dashboard/internal/feature/quotes/usecase"
	"finance_dashboard/internal/platform/externalapi/alphavantage"
	platformhttp "finance_dashboard/internal/platform/http"
	"finance_dashboard/internal/platform/usage"
)

// NewMarket creates an Alpha Vantage QuoteProvider wrapped with the usage meter.
// A disabled meter (nil Redis) passes every call straight through.
func NewMarket(cfg alphavantage.Config, meter *usage.Meter) usecase.QuoteProvider {
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	market := alphavantage.NewAlphaVantageMarket(cfg, httpClient)
	return usage.NewMeteredQuoteProvider(market, meter, alphavantage.ProviderName)
}

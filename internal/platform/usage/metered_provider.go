package usage

import (
	"context"
	"log/slog"

	newsentity "finance_dashboard/internal/feature/news/domain/entity"
	newsusecase "finance_dashboard/internal/feature/news/usecase"
	quoteentity "finance_dashboard/internal/feature/quotes/domain/entity"
	quoteusecase "finance_dashboard/internal/feature/quotes/usecase"
	"finance_dashboard/internal/shared/fetcherr"
)

// MeteredQuoteProvider decorates a QuoteProvider and records every call that
// reached the upstream. Results pass through unmodified; nothing is cached.
type MeteredQuoteProvider struct {
	inner    quoteusecase.QuoteProvider
	meter    *Meter
	provider string
}

var _ quoteusecase.QuoteProvider = (*MeteredQuoteProvider)(nil)

// NewMeteredQuoteProvider はQuoteProviderを使用量計測でラップします。
func NewMeteredQuoteProvider(inner quoteusecase.QuoteProvider, meter *Meter, provider string) *MeteredQuoteProvider {
	return &MeteredQuoteProvider{inner: inner, meter: meter, provider: provider}
}

// GetIntraday は内側のプロバイダーを呼び出し、応答があった場合に回数を記録します。
func (p *MeteredQuoteProvider) GetIntraday(ctx context.Context, symbol, interval string) (quoteentity.QuoteTable, error) {
	table, err := p.inner.GetIntraday(ctx, symbol, interval)
	recordCall(ctx, p.meter, p.provider, err)
	return table, err
}

// MeteredNewsProvider decorates a NewsProvider the same way.
type MeteredNewsProvider struct {
	inner    newsusecase.NewsProvider
	meter    *Meter
	provider string
}

var _ newsusecase.NewsProvider = (*MeteredNewsProvider)(nil)

// NewMeteredNewsProvider はNewsProviderを使用量計測でラップします。
func NewMeteredNewsProvider(inner newsusecase.NewsProvider, meter *Meter, provider string) *MeteredNewsProvider {
	return &MeteredNewsProvider{inner: inner, meter: meter, provider: provider}
}

// Search は内側のプロバイダーを呼び出し、応答があった場合に回数を記録します。
func (p *MeteredNewsProvider) Search(ctx context.Context, query string) ([]newsentity.Article, error) {
	articles, err := p.inner.Search(ctx, query)
	recordCall(ctx, p.meter, p.provider, err)
	return articles, err
}

// recordCall counts calls that got an upstream answer: success or a FetchFailure.
// Transport errors are not counted. Metering errors are logged, never returned.
func recordCall(ctx context.Context, meter *Meter, provider string, err error) {
	if !meter.Enabled() {
		return
	}
	if err != nil && !fetcherr.IsFetchFailure(err) {
		return
	}
	if _, rerr := meter.Record(ctx, provider); rerr != nil {
		slog.WarnContext(ctx, "failed to record upstream usage", "provider", provider, "error", rerr)
	}
}

// Package usecase は株価（イントラデイ時系列）取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

const (
	// DefaultInterval はイントラデイ時系列のデフォルト時間足です。
	DefaultInterval = "1min"

	// QuoteUnavailableMessage は株価取得失敗時に表示層へ渡す文言です。
	QuoteUnavailableMessage = "Error fetching stock data. Check the API key or symbol."
)

// QuoteProvider は外部APIからイントラデイ時系列を取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteProvider interface {
	// GetIntraday returns a *fetcherr.FetchFailure when the response lacks the time series key.
	GetIntraday(ctx context.Context, symbol, interval string) (entity.QuoteTable, error)
}

// QuotesUsecase は株価取得のユースケースを定義します。
type QuotesUsecase struct {
	market QuoteProvider
}

// NewQuotesUsecase はQuotesUsecaseの新しいインスタンスを生成します。
func NewQuotesUsecase(market QuoteProvider) *QuotesUsecase {
	return &QuotesUsecase{market: market}
}

// FetchQuotes は指定銘柄・時間足のイントラデイ時系列を1回だけ取得します。
//
// 時系列キーが欠落していた場合は空のテーブルとFetchFailureを返し、Diagnosticを1件発行します。
// トランスポートエラーはそのまま返します（描画サイクルにとって致命的）。
func (u *QuotesUsecase) FetchQuotes(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
	if interval == "" {
		interval = DefaultInterval
	}

	table, err := u.market.GetIntraday(ctx, symbol, interval)
	if err != nil {
		var ff *fetcherr.FetchFailure
		if errors.As(err, &ff) {
			diagnostics.Emit(ctx, diagnostics.Diagnostic{
				Kind:    ff.Kind,
				Message: QuoteUnavailableMessage,
				Detail:  ff.Detail,
			})
			return entity.EmptyQuoteTable(symbol, interval), err
		}
		return entity.QuoteTable{}, err
	}
	return table, nil
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/feature/quotes/usecase"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

// ErrTransport はモックと期待値の間で共有されるセンチネルエラーです。
var ErrTransport = errors.New("dial tcp: connection refused")

// mockQuoteProvider はQuoteProviderインターフェースのモック実装です。
type mockQuoteProvider struct {
	GetIntradayFunc  func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error)
	GetIntradayCalls int
}

func (m *mockQuoteProvider) GetIntraday(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
	m.GetIntradayCalls++
	if m.GetIntradayFunc != nil {
		return m.GetIntradayFunc(ctx, symbol, interval)
	}
	return entity.QuoteTable{}, errors.New("GetIntradayFunc is not implemented")
}

func oneRowTable(symbol, interval string) entity.QuoteTable {
	return entity.QuoteTable{
		Symbol:   symbol,
		Interval: interval,
		Columns:  []string{"open", "close"},
		Rows: []entity.QuoteRow{
			{Time: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Values: map[string]string{"open": "100.0", "close": "101.0"}},
		},
	}
}

// TestQuotesUsecase_FetchQuotes はFetchQuotesのパラメータ処理・エラー分類・Diagnostic発行をテストします。
func TestQuotesUsecase_FetchQuotes(t *testing.T) {
	tests := []struct {
		name             string
		inputInterval    string
		expectedInterval string
		providerFunc     func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error)
		wantRows         int
		wantErr          error
		wantDiagnostics  int
	}{
		{
			name:             "success: interval specified",
			inputInterval:    "5min",
			expectedInterval: "5min",
			providerFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
				return oneRowTable(symbol, interval), nil
			},
			wantRows: 1,
		},
		{
			name:             "success: default interval used when empty",
			inputInterval:    "",
			expectedInterval: "1min",
			providerFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
				return oneRowTable(symbol, interval), nil
			},
			wantRows: 1,
		},
		{
			name:             "fetch failure: empty table and exactly one diagnostic",
			inputInterval:    "1min",
			expectedInterval: "1min",
			providerFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
				return entity.QuoteTable{}, fetcherr.New(fetcherr.KindQuoteUnavailable, "invalid symbol")
			},
			wantRows:        0,
			wantErr:         fetcherr.ErrQuoteUnavailable,
			wantDiagnostics: 1,
		},
		{
			name:             "transport error: propagated without diagnostic",
			inputInterval:    "1min",
			expectedInterval: "1min",
			providerFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
				return entity.QuoteTable{}, ErrTransport
			},
			wantRows: 0,
			wantErr:  ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockQuoteProvider{
				GetIntradayFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
					assert.Equal(t, "AAPL", symbol)
					assert.Equal(t, tt.expectedInterval, interval)
					return tt.providerFunc(ctx, symbol, interval)
				},
			}
			uc := usecase.NewQuotesUsecase(mock)

			collector := diagnostics.NewCollector()
			ctx := diagnostics.NewContext(context.Background(), collector)

			table, err := uc.FetchQuotes(ctx, "AAPL", tt.inputInterval)

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantRows, table.Len())
			assert.Equal(t, tt.wantDiagnostics, collector.Len())
			assert.Equal(t, 1, mock.GetIntradayCalls)
		})
	}
}

func TestQuotesUsecase_FetchFailureDiagnosticContent(t *testing.T) {
	mock := &mockQuoteProvider{
		GetIntradayFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
			return entity.QuoteTable{}, fetcherr.New(fetcherr.KindQuoteUnavailable, "invalid symbol")
		},
	}
	uc := usecase.NewQuotesUsecase(mock)
	collector := diagnostics.NewCollector()

	table, err := uc.FetchQuotes(diagnostics.NewContext(context.Background(), collector), "ZZZZ", "1min")

	require.Error(t, err)
	assert.True(t, table.Empty())
	assert.Equal(t, "ZZZZ", table.Symbol)
	require.Equal(t, 1, collector.Len())
	d := collector.Items()[0]
	assert.Equal(t, fetcherr.KindQuoteUnavailable, d.Kind)
	assert.Equal(t, usecase.QuoteUnavailableMessage, d.Message)
	assert.Equal(t, "invalid symbol", d.Detail)
}

// TestQuotesUsecase_Idempotent は同じ入力で2回呼ぶと同じ結果になり、2回とも上流を呼ぶことを検証します。
func TestQuotesUsecase_Idempotent(t *testing.T) {
	mock := &mockQuoteProvider{
		GetIntradayFunc: func(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
			return oneRowTable(symbol, interval), nil
		},
	}
	uc := usecase.NewQuotesUsecase(mock)

	first, err := uc.FetchQuotes(context.Background(), "AAPL", "1min")
	require.NoError(t, err)
	second, err := uc.FetchQuotes(context.Background(), "AAPL", "1min")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, mock.GetIntradayCalls)
}

package alphavantage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // Meta Data の "6. Time Zone" を解決するため

	"finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/feature/quotes/usecase"
	"finance_dashboard/internal/platform/externalapi/alphavantage/dto"
	platformhttp "finance_dashboard/internal/platform/http"
	"finance_dashboard/internal/shared/fetcherr"
)

const (
	// ProviderName は使用量計測などで使うプロバイダー名です。
	ProviderName = "alphavantage"

	intradayFunction = "TIME_SERIES_INTRADAY"
)

// Timestamp layouts tried in order; daily-style keys carry no time part.
var timestampLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// AlphaVantageMarket はAlpha Vantage外部APIからイントラデイ時系列を取得するQuoteProvider実装です。
type AlphaVantageMarket struct {
	cfg    Config
	client *http.Client
}

// AlphaVantageMarketがQuoteProviderを実装していることをコンパイル時に検証します。
var _ usecase.QuoteProvider = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket は指定された設定とHTTPクライアントでAlphaVantageMarketの新しいインスタンスを生成します。
func NewAlphaVantageMarket(cfg Config, client *http.Client) *AlphaVantageMarket {
	return &AlphaVantageMarket{cfg: cfg, client: client}
}

// SeriesKey returns the top-level response key that holds the series for interval.
func SeriesKey(interval string) string {
	return fmt.Sprintf("Time Series (%s)", interval)
}

// GetIntraday はAlpha Vantage APIからイントラデイ時系列を取得し、QuoteTableとして返します。
//
// 時系列キーが無いレスポンス（エラーメッセージ、レート制限、未知の銘柄・時間足）は
// *fetcherr.FetchFailure を返します。HTTPステータスでは判定しません。
func (a *AlphaVantageMarket) GetIntraday(ctx context.Context, symbol, interval string) (entity.QuoteTable, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("function", intradayFunction)
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	if a.cfg.OutputSize != "" {
		q.Set("outputsize", a.cfg.OutputSize)
	}
	q.Set("apikey", a.cfg.APIKey)

	// URLを生成
	u := fmt.Sprintf("%s?%s", a.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.QuoteTable{}, err
	}

	res, err := a.client.Do(req)
	if err != nil {
		return entity.QuoteTable{}, fmt.Errorf("alphavantage request: %w", platformhttp.RedactError(err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	key := SeriesKey(interval)
	body, err := dto.DecodeIntraday(res.Body, key)
	if err != nil {
		return entity.QuoteTable{}, fmt.Errorf("alphavantage decode (http %d): %w", res.StatusCode, err)
	}
	if !body.HasSeries {
		return entity.QuoteTable{}, fetcherr.New(fetcherr.KindQuoteUnavailable, body.UpstreamMessage())
	}

	return toQuoteTable(symbol, interval, body)
}

// toQuoteTable は時系列を転置し、各タイムスタンプを1行、ラベルの数字プレフィックスを除いたキーを列にします。
func toQuoteTable(symbol, interval string, body *dto.IntradayResponse) (entity.QuoteTable, error) {
	table := entity.QuoteTable{
		Symbol:   symbol,
		Interval: interval,
		Columns:  []string{},
		Rows:     make([]entity.QuoteRow, 0, len(body.Series)),
	}

	loc := time.UTC
	if body.Meta != nil {
		table.Meta = entity.Meta{
			Information:   body.Meta.Information,
			Symbol:        body.Meta.Symbol,
			LastRefreshed: body.Meta.LastRefreshed,
			Interval:      body.Meta.Interval,
			OutputSize:    body.Meta.OutputSize,
			TimeZone:      body.Meta.TimeZone,
		}
		if l, err := time.LoadLocation(body.Meta.TimeZone); err == nil && body.Meta.TimeZone != "" {
			loc = l
		}
	}

	seen := map[string]struct{}{}
	for _, e := range body.Series {
		// タイムスタンプをパース
		tm, err := parseTimestamp(e.Timestamp, loc)
		if err != nil {
			return entity.QuoteTable{}, err
		}

		values := make(map[string]string, len(e.Fields))
		for _, f := range e.Fields {
			col := ColumnName(f.Key)
			values[col] = f.Value
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				table.Columns = append(table.Columns, col)
			}
		}
		table.Rows = append(table.Rows, entity.QuoteRow{Time: tm, Values: values})
	}
	return table, nil
}

// ColumnName strips the numeric label prefix: "1. open" -> "open".
// Keys without the ". " separator are kept as-is.
func ColumnName(key string) string {
	parts := strings.SplitN(key, ". ", 3)
	if len(parts) < 2 {
		return key
	}
	return parts[1]
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		tm, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return tm, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse time %q: %w", s, lastErr)
}

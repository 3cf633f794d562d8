package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/shared/ratelimiter"
)

// QuoteFetcher はスナップショット作成に使う株価取得のインターフェイスです。
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbol, interval string) (entity.QuoteTable, error)
}

// Snapshot は1銘柄の最新の終値です。
type Snapshot struct {
	Symbol string
	Time   time.Time
	Close  decimal.Decimal
	Rows   int
	Err    error // 取得に失敗した場合のみ設定
}

// SnapshotUsecase はウォッチリストの全銘柄について最新値を順番に取得します。
type SnapshotUsecase struct {
	quotes      QuoteFetcher
	rateLimiter ratelimiter.RateLimiterInterface
	interval    string
}

// NewSnapshotUsecase は新しい SnapshotUsecase を作成します。
func NewSnapshotUsecase(quotes QuoteFetcher, rateLimiter ratelimiter.RateLimiterInterface, interval string) *SnapshotUsecase {
	if interval == "" {
		interval = DefaultInterval
	}
	return &SnapshotUsecase{quotes: quotes, rateLimiter: rateLimiter, interval: interval}
}

// snapshotOne は1銘柄分の時系列を取得し、先頭行の終値を取り出します。
func (su *SnapshotUsecase) snapshotOne(ctx context.Context, symbol string) Snapshot {
	table, err := su.quotes.FetchQuotes(ctx, symbol, su.interval)
	if err != nil {
		return Snapshot{Symbol: symbol, Err: err}
	}
	s := Snapshot{Symbol: symbol, Rows: table.Len()}
	latest, ok := table.Latest()
	if !ok {
		return s
	}
	s.Time = latest.Time
	if c, err := latest.Decimal(entity.ColumnClose); err == nil {
		s.Close = c
	} else {
		s.Err = err
	}
	return s
}

// SnapshotAll は指定された全銘柄のスナップショットを作成します。
// APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
// 1つの銘柄で失敗しても処理を止めず、結果のErrに記録して次へ進みます。
func (su *SnapshotUsecase) SnapshotAll(ctx context.Context, symbols []string) ([]Snapshot, error) {
	out := make([]Snapshot, 0, len(symbols))
	for _, s := range symbols {
		if err := su.rateLimiter.WaitIfNeeded(ctx); err != nil {
			return out, err
		}
		snap := su.snapshotOne(ctx, s)
		if snap.Err != nil {
			slog.Error("failed to snapshot symbol", "symbol", s, "interval", su.interval, "error", snap.Err)
		}
		out = append(out, snap)
	}
	return out, nil
}

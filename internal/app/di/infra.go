package di

import (
	"context"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"finance_dashboard/internal/platform/redis"
)

// OpenRedis は設定があればRedisに接続します。未設定・接続失敗のときは nil を返し、
// 呼び出し側は使用量の計測なしで動作を続けます。
func OpenRedis(ctx context.Context, cfg redis.Config) *redisv9.Client {
	if !cfg.Enabled() {
		slog.Info("REDIS_HOST not set, upstream usage metering disabled")
		return nil
	}
	rdb, err := redis.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Warn("Redis unavailable, running without usage metering", "error", err)
		return nil
	}
	return rdb
}

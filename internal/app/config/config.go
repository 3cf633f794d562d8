// Package config はアプリケーション全体の設定を環境変数から組み立てます。
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"finance_dashboard/internal/platform/db"
	"finance_dashboard/internal/platform/externalapi/alphavantage"
	"finance_dashboard/internal/platform/externalapi/newsapi"
	"finance_dashboard/internal/platform/logging"
	"finance_dashboard/internal/platform/redis"
)

// Server holds HTTP server settings.
type Server struct {
	Port            string
	AllowedOrigins  []string // CORS; empty disables the middleware
	ShutdownTimeout time.Duration
}

// Addr は ":port" を返します。
func (s Server) Addr() string {
	return ":" + s.Port
}

// Dashboard は描画サイクルとウォッチリストの設定です。
type Dashboard struct {
	Interval      string // 空ならフェッチャーのデフォルト（1min）
	NewsQuery     string // 空ならフェッチャーのデフォルト（finance）
	SnapshotLimit int    // ウォッチリスト取得の1分あたり上限
}

// Config aggregates the settings of every component.
type Config struct {
	AlphaVantage alphavantage.Config
	NewsAPI      newsapi.Config
	DB           db.Config
	Redis        redis.Config
	Logging      logging.Config
	Server       Server
	Dashboard    Dashboard
}

// Load は各パッケージの LoadConfig を呼び出し、1つの Config にまとめます。
// .env の読み込みは呼び出し側（cmd）で済ませておきます。
func Load() Config {
	return Config{
		AlphaVantage: alphavantage.LoadConfig(),
		NewsAPI:      newsapi.LoadConfig(),
		DB:           db.LoadConfigFromEnv(),
		Redis:        redis.LoadConfig(),
		Logging:      logging.LoadConfig(),
		Server: Server{
			Port:            envString("PORT", "8080"),
			AllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: 10 * time.Second,
		},
		Dashboard: Dashboard{
			Interval:      os.Getenv("DASHBOARD_INTERVAL"),
			NewsQuery:     os.Getenv("DASHBOARD_NEWS_QUERY"),
			SnapshotLimit: envInt("SNAPSHOT_RATE_LIMIT", 5),
		},
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

// splitList は "a, b,,c" を ["a" "b" "c"] にします。
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package db はウォッチリスト用のgorm接続（SQLite / PostgreSQL）を提供します。
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance_dashboard/internal/feature/symbollist/domain/entity"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSQLitePath はDB_PATH未設定時のSQLiteファイルです。
const DefaultSQLitePath = "dashboard.db"

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	Driver        string // "sqlite" or "postgres"
	Path          string // SQLite file path (":memory:" allowed)
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	RunMigrations bool
	ConnectWait   time.Duration // how long OpenDB keeps retrying
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:        os.Getenv("DB_DRIVER"),
		Path:          os.Getenv("DB_PATH"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		SSLMode:       os.Getenv("DB_SSLMODE"),
		ConnectWait:   60 * time.Second,
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	// ローカルのsqliteファイルは作った時点でテーブルが無いので、明示的に無効化されない限り移行する
	switch os.Getenv("RUN_MIGRATIONS") {
	case "true":
		cfg.RunMigrations = true
	case "false":
		cfg.RunMigrations = false
	default:
		cfg.RunMigrations = cfg.Driver == DriverSQLite
	}
	if cfg.Path == "" {
		cfg.Path = DefaultSQLitePath
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN はドライバーに応じたDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	}
	return cfg.Path
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener はドライバー名に対応するOpenerを返します。
func NewOpener(driver string) (Opener, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch driver {
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// ConnectWithRetry は接続に成功するかtimeoutを過ぎるまで、retryInterval間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB はConfigに従って接続し、RunMigrationsが有効ならウォッチリストのテーブルを作成します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	open, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectWait, open)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate はウォッチリストのスキーマを作成・更新します。
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("migrate: nil db")
	}
	if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping はreadinessチェック用に接続を確認します。
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

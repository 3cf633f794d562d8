// Package cmd - dashboard CLI commands
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"finance_dashboard/internal/app/config"
	"finance_dashboard/internal/app/di"
	"finance_dashboard/internal/feature/dashboard/transport/terminal"
	"finance_dashboard/internal/platform/db"
	"finance_dashboard/internal/platform/logging"
)

// app はサブコマンド間で共有する状態です。PersistentPreRunE で初期化され、Execute の最後に close されます。
type app struct {
	envFile string
	verbose bool

	cfg       config.Config
	logCloser io.Closer
	container *di.Container
	gdb       *gorm.DB
	rdb       *redisv9.Client
	redisDone bool
	out       io.Writer
}

// Execute はルートコマンドを実行します。
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	// cobraはRunEが失敗するとPostRunをスキップするので、後始末はここで行う
	defer a.close()

	root := newRootCmd(a)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// newRootCmd はサブコマンドを登録したルートコマンドを生成します。
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive finance dashboard in the terminal",
		Long: `Interactive finance dashboard in the terminal.

Commands:
    render      quote table, close-price sparkline and news for one symbol
    quote       intraday table for one symbol
    news        latest finance articles
    watchlist   last close of every active watchlist symbol
    symbols     manage the watchlist table
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "env file to load (default is .env)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newQuoteCmd(a))
	root.AddCommand(newNewsCmd(a))
	root.AddCommand(newWatchlistCmd(a))
	root.AddCommand(newSymbolsCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	files := []string{}
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	if err := godotenv.Load(files...); err != nil && a.envFile != "" {
		return fmt.Errorf("load %s: %w", a.envFile, err)
	}

	a.cfg = config.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		// 端末出力を汚さないよう、CLIではwarn以上のみ
		a.cfg.Logging.Level = "warn"
	}
	if a.verbose {
		a.cfg.Logging.Level = "debug"
	}

	closer, err := logging.Init(a.cfg.Logging)
	if err != nil {
		return err
	}
	a.logCloser = closer
	a.out = cmd.OutOrStdout()
	return nil
}

// usecases はDBを使わないコマンド用のコンテナを返します。
func (a *app) usecases(ctx context.Context) *di.Container {
	if !a.redisDone {
		a.rdb = di.OpenRedis(ctx, a.cfg.Redis)
		a.redisDone = true
	}
	if a.container == nil {
		a.container = di.NewContainer(a.cfg, a.gdb, a.rdb)
	}
	return a.container
}

// withDB はウォッチリストを使うコマンド用に、DB接続済みのコンテナを返します。
func (a *app) withDB(ctx context.Context, migrate bool) (*di.Container, error) {
	if a.gdb == nil {
		gdb, err := db.OpenDB(a.cfg.DB)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := db.Migrate(gdb); err != nil {
				return nil, err
			}
		}
		a.gdb = gdb
		a.container = nil
	}
	return a.usecases(ctx), nil
}

func (a *app) renderer() *terminal.Renderer {
	return terminal.NewRenderer(a.out)
}

// close は開いた接続とログファイルを閉じます。何度呼んでもかまいません。
func (a *app) close() {
	if a.gdb != nil {
		if sqlDB, err := a.gdb.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close database", "error", err)
			}
		}
		a.gdb = nil
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			slog.Warn("failed to close Redis client", "error", err)
		}
		a.rdb = nil
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
		a.logCloser = nil
	}
	a.container = nil
}

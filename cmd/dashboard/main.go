// Package main は端末版ダッシュボードのCLIエントリポイントです。
//
// 使い方:
//
//	go run ./cmd/dashboard render --symbol TSLA
//	go run ./cmd/dashboard quote IBM --interval 5min
//	go run ./cmd/dashboard news earnings
//	go run ./cmd/dashboard watchlist
//	go run ./cmd/dashboard symbols seed
package main

import (
	"os"

	"finance_dashboard/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package http provides the outbound HTTP client used by the upstream API adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はAlpha Vantage / NewsAPI 呼び出し用のHTTPクライアントを作成します。
// timeout はリクエスト全体（本文の読み込みまで）の上限です。
//
// 接続先はアダプターごとに1ホストなので、ホスト単位のアイドル接続を多めに保ちます。
// リクエストは LoggingTransport を通り、APIキーを伏せたURLで記録されます。
func NewHTTPClient(timeout time.Duration) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Timeout: timeout, Transport: NewLoggingTransport(base)}
}

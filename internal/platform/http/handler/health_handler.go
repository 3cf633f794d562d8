// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Health はプロセスの生存確認用 /healthz エンドポイントを処理します。
// 依存サービスには触れず、キャッシュを防止します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Check は依存サービス1つ分の疎通確認です。
type Check func(ctx context.Context) error

// Readiness reports whether the optional backing services (database, Redis) answer.
// Upstream quote/news APIs are not probed.
type Readiness struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewReadiness creates a Readiness handler. A zero timeout defaults to 2 seconds.
func NewReadiness(timeout time.Duration) *Readiness {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Readiness{checks: map[string]Check{}, timeout: timeout}
}

// Add registers a named check. Adding an existing name replaces it.
func (r *Readiness) Add(name string, check Check) *Readiness {
	r.checks[name] = check
	return r
}

// Handle は /readyz を処理します。すべてのチェックが成功すれば200、それ以外は503です。
func (r *Readiness) Handle(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), r.timeout)
	defer cancel()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := r.checks[name](ctx); err != nil {
			results[name] = err.Error()
			ready = false
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
}

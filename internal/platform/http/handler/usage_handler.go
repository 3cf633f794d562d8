package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_dashboard/internal/api"
)

// UsageCounter は当日のプロバイダー別呼び出し回数を返します。
type UsageCounter interface {
	Enabled() bool
	Count(ctx context.Context, provider string) (int64, error)
}

// UsageHandler handles GET /usage.
type UsageHandler struct {
	counter   UsageCounter
	providers []string
}

// NewUsageHandler は指定したプロバイダーの回数を返すハンドラーを生成します。
func NewUsageHandler(counter UsageCounter, providers ...string) *UsageHandler {
	return &UsageHandler{counter: counter, providers: providers}
}

type usageResponse struct {
	Enabled bool             `json:"enabled"`
	Calls   map[string]int64 `json:"calls"`
}

// Handle は今日（UTC）の呼び出し回数をJSONで返します。Redis未設定時は enabled=false で全て0です。
func (h *UsageHandler) Handle(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	res := usageResponse{Calls: make(map[string]int64, len(h.providers))}
	if h.counter != nil {
		res.Enabled = h.counter.Enabled()
	}
	for _, p := range h.providers {
		if !res.Enabled {
			res.Calls[p] = 0
			continue
		}
		n, err := h.counter.Count(c.Request.Context(), p)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to read usage", "provider", p, "error", err)
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "usage counter unavailable"})
			return
		}
		res.Calls[p] = n
	}
	c.JSON(http.StatusOK, res)
}

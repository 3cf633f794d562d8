// Package middleware はgin用の共通ミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finance_dashboard/internal/platform/logging"
)

// RequestIDHeader is the header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey はgin.Context上のリクエストIDのキーです。
const RequestIDKey = "request_id"

// RequestID は受信したX-Request-IDを使い、無ければUUIDを生成します。
// IDはレスポンスヘッダー、gin.Context、リクエストのcontext（slog用）に設定されます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

// GetRequestID はgin.ContextからリクエストIDを取得します。
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(RequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

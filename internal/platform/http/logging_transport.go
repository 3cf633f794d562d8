package http

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport は上流APIへのリクエストをslogに記録するRoundTripperです。
type LoggingTransport struct {
	Base http.RoundTripper
}

// NewLoggingTransport wraps base; a nil base uses http.DefaultTransport.
func NewLoggingTransport(base http.RoundTripper) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{Base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := t.Base.RoundTrip(req)
	elapsed := time.Since(start)

	ctx := req.Context()
	u := RedactURL(req.URL)
	if err != nil {
		slog.WarnContext(ctx, "upstream request failed",
			"method", req.Method, "url", u, "duration", elapsed, "error", RedactError(err))
		return nil, err
	}
	slog.DebugContext(ctx, "upstream request",
		"method", req.Method, "url", u, "status", res.StatusCode, "duration", elapsed)
	return res, nil
}

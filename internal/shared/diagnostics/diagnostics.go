// Package diagnostics carries user-facing, non-fatal notices from the fetchers
// to whichever presentation layer is rendering the current cycle.
package diagnostics

import (
	"context"
	"log/slog"
	"sync"

	"finance_dashboard/internal/shared/fetcherr"
)

// Diagnostic is one notice that an operation did not produce usable data.
type Diagnostic struct {
	Kind    fetcherr.Kind `json:"kind"`
	Message string        `json:"message"`          // 画面に表示する文言
	Detail  string        `json:"detail,omitempty"` // upstream からのエラー本文
}

// Sink はDiagnosticの受け取り先です。
type Sink interface {
	Emit(d Diagnostic)
}

// Collector は1回の描画サイクル分のDiagnosticを保持するSinkです。
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector は空のCollectorを生成します。
func NewCollector() *Collector {
	return &Collector{}
}

// Emit はDiagnosticを追加します。
func (c *Collector) Emit(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Items は収集済みのDiagnosticのコピーを返します。空の場合も nil ではなく空スライスを返します。
func (c *Collector) Items() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len は収集済みの件数を返します。
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

type sinkKey struct{}

// NewContext returns a copy of ctx that routes Emit calls to sink.
func NewContext(ctx context.Context, sink Sink) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

// FromContext はctxに紐づくSinkを返します。
func FromContext(ctx context.Context) (Sink, bool) {
	s, ok := ctx.Value(sinkKey{}).(Sink)
	return s, ok && s != nil
}

// Emit logs d and forwards it to the Sink attached to ctx, if any.
// Exactly one Sink.Emit call happens per invocation.
func Emit(ctx context.Context, d Diagnostic) {
	slog.WarnContext(ctx, "fetch failure", "kind", d.Kind, "message", d.Message, "detail", d.Detail)
	if s, ok := FromContext(ctx); ok {
		s.Emit(d)
	}
}

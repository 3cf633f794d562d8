// Package dto defines data transfer objects for the quotes HTTP API.
package dto

import (
	"time"

	"finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/shared/diagnostics"
)

// QuoteRowResponse は1タイムスタンプ分の行です。値はupstreamの文字列のまま返します。
type QuoteRowResponse struct {
	Time   string            `json:"time"`
	Values map[string]string `json:"values"`
}

// MetaResponse mirrors the upstream "Meta Data" block.
type MetaResponse struct {
	Information   string `json:"information,omitempty"`
	LastRefreshed string `json:"last_refreshed,omitempty"`
	OutputSize    string `json:"output_size,omitempty"`
	TimeZone      string `json:"time_zone,omitempty"`
}

// QuotesResponse is the body of GET /quotes/:symbol.
type QuotesResponse struct {
	Symbol      string                   `json:"symbol"`
	Interval    string                   `json:"interval"`
	Columns     []string                 `json:"columns"`
	Rows        []QuoteRowResponse       `json:"rows"`
	Meta        *MetaResponse            `json:"meta,omitempty"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
}

// NewQuotesResponse はQuoteTableをレスポンスDTOに変換します。行の順序は保持します。
func NewQuotesResponse(t entity.QuoteTable, diags []diagnostics.Diagnostic) QuotesResponse {
	out := QuotesResponse{
		Symbol:      t.Symbol,
		Interval:    t.Interval,
		Columns:     t.Columns,
		Rows:        NewQuoteRows(t.Rows),
		Diagnostics: diags,
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []diagnostics.Diagnostic{}
	}
	if t.Meta != (entity.Meta{}) {
		out.Meta = &MetaResponse{
			Information:   t.Meta.Information,
			LastRefreshed: t.Meta.LastRefreshed,
			OutputSize:    t.Meta.OutputSize,
			TimeZone:      t.Meta.TimeZone,
		}
	}
	return out
}

// NewQuoteRows converts rows keeping their order. Times are RFC 3339 with the upstream offset.
func NewQuoteRows(rows []entity.QuoteRow) []QuoteRowResponse {
	out := make([]QuoteRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, QuoteRowResponse{Time: r.Time.Format(time.RFC3339), Values: r.Values})
	}
	return out
}

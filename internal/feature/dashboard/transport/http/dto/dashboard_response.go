// Package dto defines data transfer objects for the dashboard HTTP API.
package dto

import (
	"time"

	"finance_dashboard/internal/feature/dashboard/domain/entity"
	newsdto "finance_dashboard/internal/feature/news/transport/http/dto"
	quotedto "finance_dashboard/internal/feature/quotes/transport/http/dto"
	"finance_dashboard/internal/shared/diagnostics"
)

// PointResponse は終値チャートの1点です。値は文字列で精度を保ちます。
type PointResponse struct {
	Time  string `json:"time"`
	Value string `json:"value"`
}

// DashboardResponse is the body of GET /dashboard.
type DashboardResponse struct {
	Symbol        string                      `json:"symbol"`
	Interval      string                      `json:"interval"`
	Columns       []string                    `json:"columns"`
	Preview       []quotedto.QuoteRowResponse `json:"preview"`
	TotalRows     int                         `json:"total_rows"`
	CloseSeries   []PointResponse             `json:"close_series"`
	Articles      []newsdto.ArticleResponse   `json:"articles"`
	TotalArticles int                         `json:"total_articles"`
	Diagnostics   []diagnostics.Diagnostic    `json:"diagnostics"`
}

// NewDashboardResponse はViewをレスポンスDTOに変換します。
func NewDashboardResponse(v entity.View) DashboardResponse {
	out := DashboardResponse{
		Symbol:        v.Symbol,
		Interval:      v.Interval,
		Columns:       v.Quotes.Columns,
		Preview:       quotedto.NewQuoteRows(v.Preview.Rows),
		TotalRows:     v.Quotes.Len(),
		CloseSeries:   make([]PointResponse, 0, len(v.CloseSeries)),
		Articles:      newsdto.NewArticles(v.Articles),
		TotalArticles: len(v.AllArticles),
		Diagnostics:   v.Diagnostics,
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []diagnostics.Diagnostic{}
	}
	for _, p := range v.CloseSeries {
		out.CloseSeries = append(out.CloseSeries, PointResponse{Time: p.Time.Format(time.RFC3339), Value: p.Value.String()})
	}
	return out
}

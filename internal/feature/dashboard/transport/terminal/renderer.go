// Package terminal renders dashboard data as plain text for the CLI.
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"finance_dashboard/internal/feature/dashboard/domain/entity"
	newsentity "finance_dashboard/internal/feature/news/domain/entity"
	quoteentity "finance_dashboard/internal/feature/quotes/domain/entity"
	quoteusecase "finance_dashboard/internal/feature/quotes/usecase"
	"finance_dashboard/internal/shared/diagnostics"
)

const timeLayout = "2006-01-02 15:04:05"

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Renderer はダッシュボードの各部分をwに書き出します。
// 端末でない出力先（パイプ、テスト用バッファ）では色が付きません。
type Renderer struct {
	w io.Writer

	title   lipgloss.Style
	heading lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
	gain    lipgloss.Style
	loss    lipgloss.Style
}

// NewRenderer は w の色対応に合わせたスタイルで Renderer を生成します。
func NewRenderer(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:       w,
		title:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
		heading: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		warn:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		dim:     lr.NewStyle().Foreground(lipgloss.Color("245")),
		gain:    lr.NewStyle().Foreground(lipgloss.Color("10")),
		loss:    lr.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// View は1回の描画サイクルの結果を書き出します。切り詰めは View 側で済んでいます。
func (r *Renderer) View(v entity.View) error {
	fmt.Fprintln(r.w, r.title.Render("Interactive Finance Dashboard"))
	fmt.Fprintln(r.w)

	r.Diagnostics(v.Diagnostics)

	if v.HasQuotes() {
		fmt.Fprintln(r.w, r.heading.Render("Stock Data for "+v.Symbol))
		if err := r.Table(v.Preview); err != nil {
			return err
		}
		if len(v.CloseSeries) > 0 {
			fmt.Fprintln(r.w)
			fmt.Fprintln(r.w, r.heading.Render("Stock Price for "+v.Symbol))
			fmt.Fprintf(r.w, "%s %s\n", Sparkline(v.CloseSeries), r.dim.Render("Close Price (USD)"))
		}
		fmt.Fprintln(r.w)
	}

	fmt.Fprintln(r.w, r.heading.Render("Latest Financial News"))
	r.Articles(v.Articles)
	return nil
}

// Diagnostics はフェッチ失敗の通知を1件1行で書き出します。
func (r *Renderer) Diagnostics(diags []diagnostics.Diagnostic) {
	for _, d := range diags {
		line := d.Message
		if d.Detail != "" {
			line += " (" + d.Detail + ")"
		}
		fmt.Fprintln(r.w, r.warn.Render("! "+line))
	}
	if len(diags) > 0 {
		fmt.Fprintln(r.w)
	}
}

// Table writes every row of t in table order with one column per table column.
func (r *Renderer) Table(t quoteentity.QuoteTable) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "time\t%s\t\n", strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			v, _ := row.Value(c)
			cells = append(cells, v)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", row.Time.Format(timeLayout), strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Articles writes title, description and link of each article.
func (r *Renderer) Articles(articles []newsentity.Article) {
	if len(articles) == 0 {
		fmt.Fprintln(r.w, r.dim.Render("(no articles)"))
		return
	}
	for _, a := range articles {
		fmt.Fprintln(r.w, r.heading.Render(a.Title))
		if a.Description != "" {
			fmt.Fprintln(r.w, a.Description)
		}
		fmt.Fprintln(r.w, r.dim.Render("Read more: "+a.URL))
		fmt.Fprintln(r.w)
	}
}

// Snapshots はウォッチリストの最新終値を表形式で書き出します。
func (r *Renderer) Snapshots(snaps []quoteusecase.Snapshot) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "symbol\ttime\tclose\trows\t")
	for _, s := range snaps {
		switch {
		case s.Err != nil:
			fmt.Fprintf(tw, "%s\t-\t%s\t%d\t\n", s.Symbol, r.loss.Render("unavailable"), s.Rows)
		case s.Rows == 0:
			fmt.Fprintf(tw, "%s\t-\t-\t0\t\n", s.Symbol)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", s.Symbol, s.Time.Format(timeLayout), r.gain.Render(s.Close.StringFixed(2)), s.Rows)
		}
	}
	return tw.Flush()
}

// Sparkline draws the series oldest to newest regardless of table order.
func Sparkline(series []quoteentity.Point) string {
	if len(series) == 0 {
		return ""
	}
	pts := append([]quoteentity.Point(nil), series...)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Time.Before(pts[j].Time) })

	lo, hi := pts[0].Value, pts[0].Value
	for _, p := range pts[1:] {
		if p.Value.LessThan(lo) {
			lo = p.Value
		}
		if p.Value.GreaterThan(hi) {
			hi = p.Value
		}
	}
	span := hi.Sub(lo)
	top := len(sparkTicks) - 1

	var b strings.Builder
	for _, p := range pts {
		idx := top / 2
		if !span.IsZero() {
			ratio, _ := p.Value.Sub(lo).Div(span).Float64()
			idx = int(ratio*float64(top) + 0.5)
		}
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}

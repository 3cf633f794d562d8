// Package web holds the HTML template of the dashboard page.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate はページテンプレートの名前です。
const PageTemplate = "dashboard.html"

// Templates はダッシュボードのテンプレートを解析して返します。
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	}).ParseFS(templateFS, "templates/*.html"))
}

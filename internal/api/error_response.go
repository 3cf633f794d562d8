// Package api defines response bodies shared by every HTTP handler.
package api

// ErrorResponse はエラー時のJSONレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

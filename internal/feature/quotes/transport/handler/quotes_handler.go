// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_dashboard/internal/api"
	"finance_dashboard/internal/feature/quotes/domain/entity"
	"finance_dashboard/internal/feature/quotes/transport/http/dto"
	"finance_dashboard/internal/shared/diagnostics"
	"finance_dashboard/internal/shared/fetcherr"
)

// QuotesUsecase は株価取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuotesUsecase interface {
	FetchQuotes(ctx context.Context, symbol, interval string) (entity.QuoteTable, error)
}

// QuotesHandler は株価データのHTTPリクエストを処理します。
type QuotesHandler struct {
	uc QuotesUsecase
}

// NewQuotesHandler は指定されたusecaseでQuotesHandlerの新しいインスタンスを生成します。
func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// GetQuotes は銘柄コードと時間足を受け取り、イントラデイ時系列をJSONで返します。
//
// エンドポイント例:
// GET /quotes/:symbol?interval=5min
//
// FetchFailureは200で空のテーブルとdiagnosticsを返し、トランスポートエラーは502を返します。
func (h *QuotesHandler) GetQuotes(c *gin.Context) {
	symbol := c.Param("symbol")
	interval := c.Query("interval")

	collector := diagnostics.NewCollector()
	ctx := diagnostics.NewContext(c.Request.Context(), collector)

	table, err := h.uc.FetchQuotes(ctx, symbol, interval)
	if err != nil && !fetcherr.IsFetchFailure(err) {
		slog.ErrorContext(ctx, "quote fetch failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotesResponse(table, collector.Items()))
}

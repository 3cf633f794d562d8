package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_dashboard/internal/api"
	"finance_dashboard/internal/feature/symbollist/domain/entity"
	"finance_dashboard/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase はウォッチリストに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler はウォッチリストに関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List はサイドバー用に有効な銘柄の一覧を返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to list symbols", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list symbols"})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Exchange: s.Exchange})
	}
	c.JSON(http.StatusOK, out)
}

// Package usecase implements the business logic for the dashboard watchlist.
package usecase

import (
	"context"
	"log/slog"

	"finance_dashboard/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for watchlist symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	InsertMissing(ctx context.Context, symbols []entity.Symbol) (int64, error)
}

// SymbolUsecase provides business logic for watchlist operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols in sidebar order.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes はウォッチリストの銘柄コードのみを表示順で返します。
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// SeedDefaults は初期ウォッチリストのうち未登録の銘柄を追加し、追加件数を返します。
func (u *SymbolUsecase) SeedDefaults(ctx context.Context) (int64, error) {
	n, err := u.repo.InsertMissing(ctx, entity.DefaultWatchlist())
	if err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "watchlist seeded", "inserted", n)
	return n, nil
}

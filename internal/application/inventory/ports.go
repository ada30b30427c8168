package inventory

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// StockIndexer espejo de búsqueda para niveles de stock. Best-effort: el
// ledger nunca bloquea ni falla por un error del índice.
type StockIndexer interface {
	IndexStock(ctx context.Context, stock *entity.Stock) error
}

package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock.
// Solo el ledger de stock llama UpdateQuantity, y siempre dentro de una
// transacción con la fila bloqueada (GetByIDForUpdate).
type StockRepository interface {
	Create(stock *entity.Stock) error
	GetByID(id string) (*entity.Stock, error)
	GetByItemAndWarehouse(itemID, warehouseID string) (*entity.Stock, error)
	// GetByIDForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.Stock, error)
	UpdateQuantity(stock *entity.Stock) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
}

package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateCost actualiza solo el costo promedio ponderado (usado por el ledger).
	UpdateCost(id string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}

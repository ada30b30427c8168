package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest entrada para dar de alta stock de un artículo en una
// bodega (primera existencia de esa pareja artículo+bodega).
type CreateStockRequest struct {
	ItemID      string           `json:"item_id" validate:"required,uuid"`
	WarehouseID string           `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int64            `json:"quantity" validate:"min=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
}

// ReceiveStockRequest entrada para recibir unidades sobre un stock existente.
// UnitCost alimenta el costo promedio ponderado del artículo.
type ReceiveStockRequest struct {
	Quantity int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// AdjustStockRequest entrada para ajustar stock (delta positivo o negativo).
type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// StockResponse salida de una fila de stock.
type StockResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockListResponse lista paginada de stock por bodega.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

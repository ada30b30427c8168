package entity

import "time"

// Stock representa la existencia de un artículo en una bodega.
// La pareja (ItemID, WarehouseID) es única: una sola fila de stock por
// artículo y bodega, garantizada por constraint en la tabla.
// Quantity nunca es negativa; solo el ledger de stock la muta.
type Stock struct {
	ID          string
	ItemID      string
	WarehouseID string
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

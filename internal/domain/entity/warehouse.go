package entity

import "time"

// Warehouse representa una bodega o sucursal entre las que se trasladan
// artículos (multi-bodega).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

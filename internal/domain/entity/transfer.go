package entity

import "time"

// Transfer representa una línea de un envío: mover Quantity unidades del
// stock identificado por StockID hacia la bodega destino del envío padre.
// Inmutable una vez creado el envío. Referencia al Stock por id (no por
// objeto) para no arrastrar ciclos de propiedad fuera del ledger.
type Transfer struct {
	ID         string
	ShipmentID string
	StockID    string // stock de origen
	Quantity   int64  // siempre > 0; <= stock disponible al momento de crear
	CreatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo o SKU trasladable entre bodegas.
// Cost es promedio ponderado, recalculado en cada recepción de stock.
type Item struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

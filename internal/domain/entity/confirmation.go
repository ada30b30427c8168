package entity

import "time"

// Confirmation registra que las unidades de un traslado fueron movidas de
// verdad, descontando del stock de origen. Referencia al Transfer solo por
// id. Se permiten confirmaciones parciales: la suma de confirmaciones de un
// traslado nunca excede su cantidad solicitada.
type Confirmation struct {
	ID         string
	TransferID string
	Quantity   int64 // > 0; <= cantidad pendiente del traslado
	CreatedBy  string
	CreatedAt  time.Time
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrItemNotFound       = errors.New("artículo no encontrado")
	ErrWarehouseNotFound  = errors.New("bodega no encontrada")
	ErrStockNotFound      = errors.New("stock no encontrado")
	ErrShipmentNotFound   = errors.New("envío no encontrado")
	ErrTransferNotFound   = errors.New("traslado no encontrado")
	ErrDuplicateStock     = errors.New("ya existe stock para ese artículo en esa bodega")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que cero")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// ConstraintViolationError indica que una precondición estructural falló antes
// de tocar persistencia (ej. fecha esperada con menos de 3 días hábiles).
type ConstraintViolationError struct {
	Message string
}

func (e *ConstraintViolationError) Error() string {
	return e.Message
}

// NewConstraintViolation construye el error con el mensaje dado.
func NewConstraintViolation(format string, args ...any) *ConstraintViolationError {
	return &ConstraintViolationError{Message: fmt.Sprintf(format, args...)}
}

// QuantityExceededError indica que una confirmación pidió más unidades de las
// que el traslado tiene pendientes. Distinto de ErrInsufficientStock: aquí la
// causa es "pediste más de lo solicitado en el traslado", no "la bodega se
// quedó sin stock".
type QuantityExceededError struct {
	TransferID string
	Max        int64 // cantidad pendiente de confirmar del traslado
	Given      int64 // cantidad solicitada
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("la cantidad confirmada (%d) excede la pendiente del traslado (%d)", e.Given, e.Max)
}

// ShipmentNotPendingError indica un intento de transicionar un envío que ya
// está en estado terminal (ACCEPTED y DENIED son definitivos).
type ShipmentNotPendingError struct {
	ShipmentID string
	Status     string
}

func (e *ShipmentNotPendingError) Error() string {
	return fmt.Sprintf("el envío %s no está pendiente (estado actual: %s)", e.ShipmentID, e.Status)
}

// ShipmentNotAcceptedError indica un intento de confirmar un traslado cuyo
// envío padre no está aceptado.
type ShipmentNotAcceptedError struct {
	ShipmentID string
	Status     string
}

func (e *ShipmentNotAcceptedError) Error() string {
	return fmt.Sprintf("el envío %s no está aceptado (estado actual: %s)", e.ShipmentID, e.Status)
}

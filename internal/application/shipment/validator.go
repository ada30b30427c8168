package shipment

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TransferInput una línea de traslado solicitada: stock de origen y cantidad.
type TransferInput struct {
	StockID  string
	Quantity int64
}

// TransferValidator resuelve una línea solicitada contra el stock vivo y
// produce un Transfer listo para persistir (aún no persistido).
//
// La verificación es consultiva al crear el envío: evita envíos obviamente
// inválidos, pero el descuento autoritativo ocurre al confirmar, porque un
// envío puede quedar PENDING mucho tiempo mientras otros traslados consumen
// el mismo stock. No hay reserva: decisión de producto heredada, no un
// descuido (ver DESIGN.md).
type TransferValidator struct {
	stockRepo repository.StockRepository
}

// NewTransferValidator construye el validador sobre el repositorio dado
// (pool para consultas sueltas, o el repo de una tx para crear envíos).
func NewTransferValidator(stockRepo repository.StockRepository) *TransferValidator {
	return &TransferValidator{stockRepo: stockRepo}
}

// Resolve valida la línea y devuelve el Transfer ligado al stock resuelto.
// Errores: ErrInvalidQuantity (cantidad <= 0), ErrStockNotFound (el stock no
// existe), ErrInsufficientStock (cantidad > existencia viva).
func (v *TransferValidator) Resolve(in TransferInput) (*entity.Transfer, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	stock, err := v.stockRepo.GetByID(in.StockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	if in.Quantity > stock.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	return &entity.Transfer{
		ID:        uuid.New().String(),
		StockID:   stock.ID,
		Quantity:  in.Quantity,
		CreatedAt: time.Now(),
	}, nil
}

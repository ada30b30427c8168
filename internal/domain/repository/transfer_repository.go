package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para Transfer.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetByIDForUpdate obtiene un traslado bloqueando su fila dentro de la
	// transacción actual: serializa confirmaciones concurrentes del mismo
	// traslado.
	GetByIDForUpdate(id string) (*entity.Transfer, error)
	ListByShipment(shipmentID string) ([]*entity.Transfer, error)
}

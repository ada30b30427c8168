package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia para Shipment.
// Create persiste solo la cabecera; los traslados van por TransferRepository
// en la misma transacción.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	// GetByIDForUpdate bloquea la fila para serializar transiciones de estado.
	GetByIDForUpdate(id string) (*entity.Shipment, error)
	UpdateStatus(shipment *entity.Shipment) error
	List(limit, offset int) ([]*entity.Shipment, error)
}

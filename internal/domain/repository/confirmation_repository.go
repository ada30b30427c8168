package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// ConfirmationRepository define el puerto de persistencia para Confirmation.
type ConfirmationRepository interface {
	Create(confirmation *entity.Confirmation) error
	ListByTransfer(transferID string) ([]*entity.Confirmation, error)
	// SumByTransfer devuelve el total ya confirmado de un traslado (0 si no hay).
	SumByTransfer(transferID string) (int64, error)
}

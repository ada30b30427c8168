package shipment

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// Transition aplica PENDING → ACCEPTED o PENDING → DENIED. Ambos destinos son
// terminales: un segundo intento sobre el mismo envío falla con
// ShipmentNotPendingError. La fila se bloquea durante la transición para que
// dos transiciones simultáneas no pasen ambas la verificación de estado.
func (w *Workflow) Transition(ctx context.Context, shipmentID, newStatus string) (*dto.ShipmentResponse, error) {
	if newStatus != entity.ShipmentStatusAccepted && newStatus != entity.ShipmentStatusDenied {
		return nil, domain.NewConstraintViolation("estado destino inválido: %q", newStatus)
	}

	var (
		oldStatus string
		snapshot  entity.Shipment
	)
	err := w.txRunner.RunShipment(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		_ repository.TransferRepository,
		_ repository.StockRepository,
		_ repository.ConfirmationRepository,
	) error {
		s, err := shipmentRepo.GetByIDForUpdate(shipmentID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrShipmentNotFound
		}
		if !s.CanTransitionTo(newStatus) {
			return &domain.ShipmentNotPendingError{ShipmentID: s.ID, Status: s.Status}
		}
		oldStatus = s.Status
		s.Status = newStatus
		s.UpdatedAt = w.cfg.Now()
		if err := shipmentRepo.UpdateStatus(s); err != nil {
			return err
		}
		snapshot = *s
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().
		Str("shipment_id", shipmentID).
		Str("old_status", oldStatus).
		Str("new_status", newStatus).
		Msg("envío transicionado")

	// El evento sale después del commit y es best-effort: un fallo en la
	// notificación nunca revierte el cambio de estado.
	if w.publisher != nil {
		w.publisher.Publish(StatusChangedEvent{
			Shipment:  snapshot,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			At:        w.cfg.Now(),
		})
	}

	return w.loadResponse(ctx, shipmentID)
}

package shipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/calendar"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// Create valida y persiste un envío con sus traslados en PENDING, todo o nada
// dentro de una transacción.
//
// Orden de validación: primero la precondición de lead time (antes de tocar
// cualquier otra entidad), luego bodega destino, luego cada traslado en orden
// de lista; el primer traslado inválido aborta la creación con su error
// específico y no queda ningún envío persistido.
func (w *Workflow) Create(ctx context.Context, in dto.CreateShipmentRequest, createdBy string) (*dto.ShipmentResponse, error) {
	today := w.today()
	minDate := calendar.AddBusinessDays(today, w.cfg.MinLeadDays)
	if dateOnly(in.ExpectedDate).Before(minDate) {
		return nil, domain.NewConstraintViolation(
			"la fecha esperada debe ser de al menos %d días hábiles a partir de hoy", w.cfg.MinLeadDays)
	}

	dest, err := w.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	if len(in.Transfers) == 0 && !w.cfg.AllowEmptyTransfers {
		return nil, domain.NewConstraintViolation("el envío debe incluir al menos un traslado")
	}

	now := w.cfg.Now()
	s := &entity.Shipment{
		ID:            uuid.New().String(),
		Status:        entity.ShipmentStatusPending,
		OrderNumber:   in.OrderNumber,
		ToWarehouseID: in.ToWarehouseID,
		ExpectedDate:  dateOnly(in.ExpectedDate),
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = w.txRunner.RunShipment(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		_ repository.ConfirmationRepository,
	) error {
		// El validador resuelve contra el stock visto por esta tx.
		validator := NewTransferValidator(stockRepo)
		transfers := make([]entity.Transfer, 0, len(in.Transfers))
		for _, line := range in.Transfers {
			resolved, err := validator.Resolve(TransferInput{StockID: line.StockID, Quantity: line.Quantity})
			if err != nil {
				return err
			}
			resolved.ShipmentID = s.ID
			resolved.CreatedAt = now
			transfers = append(transfers, *resolved)
		}
		if err := shipmentRepo.Create(s); err != nil {
			return err
		}
		for i := range transfers {
			if err := transferRepo.Create(&transfers[i]); err != nil {
				return err
			}
		}
		s.Transfers = transfers
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().
		Str("shipment_id", s.ID).
		Str("order_number", s.OrderNumber).
		Int("transfers", len(s.Transfers)).
		Msg("envío creado en PENDING")

	return w.loadResponse(ctx, s.ID)
}

package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/inventory"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// ConfirmationEngine aplica confirmaciones sobre traslados de envíos
// aceptados: valida la cantidad contra lo pendiente del traslado, descuenta
// del stock de origen vía el ledger (fila bloqueada) y persiste la
// confirmación, todo en una sola transacción.
type ConfirmationEngine struct {
	txRunner TxRunner
	ledger   *inventory.StockLedger
	log      *logger.Logger
	now      func() time.Time
}

// NewConfirmationEngine construye el motor de confirmaciones.
func NewConfirmationEngine(txRunner TxRunner, ledger *inventory.StockLedger, log *logger.Logger) *ConfirmationEngine {
	return &ConfirmationEngine{txRunner: txRunner, ledger: ledger, log: log, now: time.Now}
}

// Confirm confirma quantity unidades del traslado transferID.
//
// Se permiten confirmaciones parciales: la suma de confirmaciones de un
// traslado nunca excede su cantidad solicitada. QuantityExceededError lleva
// como Max lo pendiente (cantidad del traslado menos lo ya confirmado).
// ErrInsufficientStock se propaga del ledger si el stock vivo ya no cubre la
// cantidad: el stock pudo consumirse por otros traslados desde la creación.
func (e *ConfirmationEngine) Confirm(ctx context.Context, transferID string, quantity int64, confirmedBy string) (*dto.ConfirmationResponse, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var (
		resp     *dto.ConfirmationResponse
		mirrored *entity.Stock
	)
	err := e.txRunner.RunShipment(ctx, func(
		shipmentRepo repository.ShipmentRepository,
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		confirmationRepo repository.ConfirmationRepository,
	) error {
		// Bloquear el traslado antes de sumar lo confirmado: dos
		// confirmaciones concurrentes del mismo traslado se serializan aquí
		// y la segunda ve la suma ya cometida por la primera.
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrTransferNotFound
		}
		parent, err := shipmentRepo.GetByID(transfer.ShipmentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrShipmentNotFound
		}
		if parent.Status != entity.ShipmentStatusAccepted {
			return &domain.ShipmentNotAcceptedError{ShipmentID: parent.ID, Status: parent.Status}
		}

		confirmed, err := confirmationRepo.SumByTransfer(transferID)
		if err != nil {
			return err
		}
		remaining := transfer.Quantity - confirmed
		if quantity > remaining {
			return &domain.QuantityExceededError{TransferID: transferID, Max: remaining, Given: quantity}
		}

		// Descuento autoritativo: aquí se bloquea la fila de stock y se
		// re-verifica la existencia viva, no la vista al crear el envío.
		stock, err := e.ledger.AdjustInTx(stockRepo, transfer.StockID, -quantity)
		if err != nil {
			return err
		}

		now := e.now()
		conf := &entity.Confirmation{
			ID:         uuid.New().String(),
			TransferID: transferID,
			Quantity:   quantity,
			CreatedBy:  confirmedBy,
			CreatedAt:  now,
		}
		if err := confirmationRepo.Create(conf); err != nil {
			return err
		}

		mirrored = stock
		resp = &dto.ConfirmationResponse{
			ID:            conf.ID,
			TransferID:    transferID,
			Quantity:      quantity,
			RemainingQty:  remaining - quantity,
			StockQuantity: stock.Quantity,
			CreatedBy:     confirmedBy,
			CreatedAt:     now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.ledger.Mirror(ctx, mirrored)
	e.log.Info().
		Str("transfer_id", transferID).
		Int64("quantity", quantity).
		Int64("stock_quantity", resp.StockQuantity).
		Msg("traslado confirmado")
	return resp, nil
}

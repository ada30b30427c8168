package shipment

import (
	"context"
	"time"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// WorkflowConfig políticas del flujo de envíos.
type WorkflowConfig struct {
	// MinLeadDays días hábiles mínimos entre hoy y la fecha esperada (3 por defecto).
	MinLeadDays int
	// AllowEmptyTransfers permite crear envíos sin traslados (apagado por defecto).
	AllowEmptyTransfers bool
	// Now reloj inyectable para tests (time.Now por defecto).
	Now func() time.Time
}

// Workflow orquesta el ciclo de vida de los envíos: creación con traslados
// validados y transición PENDING → {ACCEPTED, DENIED} con emisión de eventos.
type Workflow struct {
	cfg              WorkflowConfig
	txRunner         TxRunner
	shipmentRepo     repository.ShipmentRepository
	transferRepo     repository.TransferRepository
	stockRepo        repository.StockRepository
	confirmationRepo repository.ConfirmationRepository
	itemRepo         repository.ItemRepository
	warehouseRepo    repository.WarehouseRepository
	userRepo         repository.UserRepository
	publisher        *Publisher
	manifests        ManifestGenerator
	log              *logger.Logger
}

// NewWorkflow construye el flujo de envíos. publisher y manifests pueden ser
// nil (sin notificaciones / sin PDF).
func NewWorkflow(
	cfg WorkflowConfig,
	txRunner TxRunner,
	shipmentRepo repository.ShipmentRepository,
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	confirmationRepo repository.ConfirmationRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	publisher *Publisher,
	manifests ManifestGenerator,
	log *logger.Logger,
) *Workflow {
	if cfg.MinLeadDays <= 0 {
		cfg.MinLeadDays = 3
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Workflow{
		cfg:              cfg,
		txRunner:         txRunner,
		shipmentRepo:     shipmentRepo,
		transferRepo:     transferRepo,
		stockRepo:        stockRepo,
		confirmationRepo: confirmationRepo,
		itemRepo:         itemRepo,
		warehouseRepo:    warehouseRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		manifests:        manifests,
		log:              log,
	}
}

// Get devuelve un envío completo (traslados con stock/artículo/bodega).
func (w *Workflow) Get(ctx context.Context, shipmentID string) (*dto.ShipmentResponse, error) {
	return w.loadResponse(ctx, shipmentID)
}

// List lista envíos paginados, sin traslados anidados.
func (w *Workflow) List(ctx context.Context, limit, offset int) (*dto.ShipmentListResponse, error) {
	shipments, err := w.shipmentRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		items = append(items, dto.ShipmentResponse{
			ID:            s.ID,
			Status:        s.Status,
			OrderNumber:   s.OrderNumber,
			ToWarehouseID: s.ToWarehouseID,
			ExpectedDate:  s.ExpectedDate,
			CreatedBy:     s.CreatedBy,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return &dto.ShipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// loadResponse arma la respuesta completa de un envío: cabecera, bodega
// destino y cada traslado con su stock, artículo, bodega de origen y total
// confirmado, para que el caller no necesite un segundo fetch.
func (w *Workflow) loadResponse(ctx context.Context, shipmentID string) (*dto.ShipmentResponse, error) {
	s, err := w.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrShipmentNotFound
	}
	resp := &dto.ShipmentResponse{
		ID:            s.ID,
		Status:        s.Status,
		OrderNumber:   s.OrderNumber,
		ToWarehouseID: s.ToWarehouseID,
		ExpectedDate:  s.ExpectedDate,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if dest, err := w.warehouseRepo.GetByID(s.ToWarehouseID); err == nil && dest != nil {
		resp.ToWarehouse = dest.Name
	}

	transfers, err := w.transferRepo.ListByShipment(s.ID)
	if err != nil {
		return nil, err
	}
	resp.Transfers = make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		tr := dto.TransferResponse{
			ID:        t.ID,
			StockID:   t.StockID,
			Quantity:  t.Quantity,
			CreatedAt: t.CreatedAt,
		}
		confirmed, err := w.confirmationRepo.SumByTransfer(t.ID)
		if err != nil {
			return nil, err
		}
		tr.ConfirmedQty = confirmed

		stock, err := w.stockRepo.GetByID(t.StockID)
		if err != nil {
			return nil, err
		}
		if stock != nil {
			tr.StockQuantity = stock.Quantity
			tr.ItemID = stock.ItemID
			tr.FromWarehouseID = stock.WarehouseID
			if item, err := w.itemRepo.GetByID(stock.ItemID); err == nil && item != nil {
				tr.ItemSKU = item.SKU
				tr.ItemName = item.Name
			}
			if from, err := w.warehouseRepo.GetByID(stock.WarehouseID); err == nil && from != nil {
				tr.FromWarehouse = from.Name
			}
		}
		resp.Transfers = append(resp.Transfers, tr)
	}
	return resp, nil
}

// today trunca el reloj del flujo a fecha (sin hora).
func (w *Workflow) today() time.Time {
	return dateOnly(w.cfg.Now())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

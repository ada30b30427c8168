package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Traslados-api/internal/domain/inventory"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// StockLedger es el único actor que muta cantidades de stock. Todo ajuste
// corre dentro de una transacción con la fila bloqueada (SELECT FOR UPDATE),
// de modo que la invariante cantidad >= 0 se sostiene bajo concurrencia:
// de dos ajustes simultáneos que juntos sobregirarían la fila, exactamente
// uno observa ErrInsufficientStock.
type StockLedger struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository // lecturas fuera de tx
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	indexer       StockIndexer // opcional; nil desactiva el espejo
	log           *logger.Logger
	now           func() time.Time
}

// NewStockLedger construye el ledger. indexer puede ser nil.
func NewStockLedger(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	indexer StockIndexer,
	log *logger.Logger,
) *StockLedger {
	return &StockLedger{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		indexer:       indexer,
		log:           log,
		now:           time.Now,
	}
}

// CreateStockInput entrada para dar de alta una fila de stock.
type CreateStockInput struct {
	ItemID      string
	WarehouseID string
	Quantity    int64
	UnitCost    *decimal.Decimal // si viene, alimenta el costo promedio del artículo
}

// Find obtiene el stock de un artículo en una bodega.
func (l *StockLedger) Find(ctx context.Context, itemID, warehouseID string) (*entity.Stock, error) {
	stock, err := l.stockRepo.GetByItemAndWarehouse(itemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	return stock, nil
}

// GetByID obtiene una fila de stock por id.
func (l *StockLedger) GetByID(ctx context.Context, id string) (*entity.Stock, error) {
	stock, err := l.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	return stock, nil
}

// ListByWarehouse lista el stock de una bodega.
func (l *StockLedger) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	return l.stockRepo.ListByWarehouse(warehouseID, limit, offset)
}

// Create da de alta la primera existencia de un artículo en una bodega.
// Devuelve ErrDuplicateStock si la pareja (artículo, bodega) ya tiene fila
// (constraint único en la tabla, código 23505).
func (l *StockLedger) Create(ctx context.Context, in CreateStockInput) (*entity.Stock, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := l.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	wh, err := l.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	now := l.now()
	stock := &entity.Stock{
		ID:          uuid.New().String(),
		ItemID:      in.ItemID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = l.txRunner.Run(ctx, func(stockRepo repository.StockRepository, itemRepo repository.ItemRepository) error {
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		if in.UnitCost != nil && in.Quantity > 0 {
			// Fila nueva: la base previa de esta bodega es cero, el promedio
			// queda en el costo de la entrada.
			newCost := domaininv.WeightedAverageCost(0, item.Cost, in.Quantity, *in.UnitCost)
			if err := itemRepo.UpdateCost(item.ID, newCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.Mirror(ctx, stock)
	return stock, nil
}

// Receive recibe unidades sobre un stock existente y recalcula el costo
// promedio ponderado del artículo con el costo unitario de la entrada.
func (l *StockLedger) Receive(ctx context.Context, stockID string, quantity int64, unitCost decimal.Decimal) (*entity.Stock, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *entity.Stock
	err := l.txRunner.Run(ctx, func(stockRepo repository.StockRepository, itemRepo repository.ItemRepository) error {
		stock, err := stockRepo.GetByIDForUpdate(stockID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrStockNotFound
		}
		item, err := itemRepo.GetByID(stock.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		newCost := domaininv.WeightedAverageCost(stock.Quantity, item.Cost, quantity, unitCost)
		if err := itemRepo.UpdateCost(item.ID, newCost); err != nil {
			return err
		}
		stock.Quantity += quantity
		stock.UpdatedAt = l.now()
		if err := stockRepo.UpdateQuantity(stock); err != nil {
			return err
		}
		updated = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.Mirror(ctx, updated)
	return updated, nil
}

// Adjust aplica delta (positivo o negativo) a la cantidad de un stock.
// Falla con ErrInsufficientStock si el resultado quedaría negativo, dejando
// la cantidad intacta.
func (l *StockLedger) Adjust(ctx context.Context, stockID string, delta int64) (*entity.Stock, error) {
	var updated *entity.Stock
	err := l.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.ItemRepository) error {
		stock, err := l.AdjustInTx(stockRepo, stockID, delta)
		if err != nil {
			return err
		}
		updated = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.Mirror(ctx, updated)
	return updated, nil
}

// AdjustInTx aplica el delta usando el repositorio de la transacción del
// caller (misma tx). Bloquea la fila antes de verificar y escribir; es el
// camino que usa también el motor de confirmaciones.
func (l *StockLedger) AdjustInTx(stockRepo repository.StockRepository, stockID string, delta int64) (*entity.Stock, error) {
	stock, err := stockRepo.GetByIDForUpdate(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	newQty := stock.Quantity + delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = l.now()
	if err := stockRepo.UpdateQuantity(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// Mirror refleja la fila en el índice de búsqueda. Best-effort: un fallo se
// registra y se descarta, nunca se propaga ni se reintenta aquí.
func (l *StockLedger) Mirror(ctx context.Context, stock *entity.Stock) {
	if l.indexer == nil || stock == nil {
		return
	}
	if err := l.indexer.IndexStock(ctx, stock); err != nil {
		l.log.Warn().Err(err).Str("stock_id", stock.ID).Msg("espejo de stock en índice falló")
	}
}

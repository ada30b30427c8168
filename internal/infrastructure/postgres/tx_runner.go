package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Traslados-api/internal/application/inventory"
	"github.com/jhoicas/Traslados-api/internal/application/shipment"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and shipment.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ shipment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos del ledger atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(stockRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunShipment inicia una transacción con los repos del flujo de envíos
// (crear envío con traslados, transicionar estado, confirmar traslados).
func (r *TxRunner) RunShipment(ctx context.Context, fn func(
	shipmentRepo repository.ShipmentRepository,
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	confirmationRepo repository.ConfirmationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	shipmentRepo := NewShipmentRepository(tx)
	transferRepo := NewTransferRepository(tx)
	stockRepo := NewStockRepository(tx)
	confirmationRepo := NewConfirmationRepository(tx)

	if err := fn(shipmentRepo, transferRepo, stockRepo, confirmationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de persistencia para traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste una línea de traslado.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, shipment_id, stock_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.ShipmentID, transfer.StockID, transfer.Quantity, transfer.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrStockNotFound
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. Retorna nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, shipment_id, stock_id, quantity, created_at
		FROM transfers WHERE id = $1`
	return r.get(query, id)
}

// GetByIDForUpdate obtiene un traslado bloqueando su fila (FOR UPDATE).
// Dos confirmaciones concurrentes del mismo traslado se serializan aquí, de
// modo que cada una vea la suma de confirmaciones ya cometida por la otra.
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, shipment_id, stock_id, quantity, created_at
		FROM transfers WHERE id = $1
		FOR UPDATE`
	return r.get(query, id)
}

func (r *TransferRepo) get(query, id string) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ShipmentID, &t.StockID, &t.Quantity, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// ListByShipment lista los traslados de un envío en orden de creación.
func (r *TransferRepo) ListByShipment(shipmentID string) ([]*entity.Transfer, error) {
	query := `
		SELECT id, shipment_id, stock_id, quantity, created_at
		FROM transfers WHERE shipment_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var result []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.ShipmentID, &t.StockID, &t.Quantity, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

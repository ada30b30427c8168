package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.ConfirmationRepository = (*ConfirmationRepo)(nil)

// ConfirmationRepo implementación del puerto ConfirmationRepository sobre PostgreSQL.
type ConfirmationRepo struct {
	q Querier
}

// NewConfirmationRepository construye el adaptador de persistencia para confirmaciones.
func NewConfirmationRepository(q Querier) *ConfirmationRepo {
	return &ConfirmationRepo{q: q}
}

// Create persiste una confirmación.
func (r *ConfirmationRepo) Create(confirmation *entity.Confirmation) error {
	query := `
		INSERT INTO confirmations (id, transfer_id, quantity, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		confirmation.ID, confirmation.TransferID, confirmation.Quantity,
		confirmation.CreatedBy, confirmation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert confirmation: %w", err)
	}
	return nil
}

// ListByTransfer lista las confirmaciones de un traslado en orden de creación.
func (r *ConfirmationRepo) ListByTransfer(transferID string) ([]*entity.Confirmation, error) {
	query := `
		SELECT id, transfer_id, quantity, created_by, created_at
		FROM confirmations WHERE transfer_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list confirmations: %w", err)
	}
	defer rows.Close()

	var result []*entity.Confirmation
	for rows.Next() {
		var c entity.Confirmation
		if err := rows.Scan(&c.ID, &c.TransferID, &c.Quantity, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan confirmation: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

// SumByTransfer devuelve el total ya confirmado de un traslado (0 si no hay).
func (r *ConfirmationRepo) SumByTransfer(transferID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM confirmations WHERE transfer_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, transferID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum confirmations: %w", err)
	}
	return total, nil
}

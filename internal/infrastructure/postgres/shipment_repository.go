package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
// Persiste solo la cabecera; los traslados los maneja TransferRepo en la
// misma transacción.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste la cabecera de un envío.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	query := `
		INSERT INTO shipments (id, status, order_number, to_warehouse_id, expected_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.Status, shipment.OrderNumber, shipment.ToWarehouseID,
		shipment.ExpectedDate, shipment.CreatedBy, shipment.CreatedAt, shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un envío por ID. Retorna nil si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	return r.get(`SELECT id, status, order_number, to_warehouse_id, expected_date, created_by, created_at, updated_at
		FROM shipments WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila del envío para serializar transiciones de
// estado concurrentes. Solo tiene sentido dentro de una transacción.
func (r *ShipmentRepo) GetByIDForUpdate(id string) (*entity.Shipment, error) {
	return r.get(`SELECT id, status, order_number, to_warehouse_id, expected_date, created_by, created_at, updated_at
		FROM shipments WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus persiste el nuevo estado del envío.
func (r *ShipmentRepo) UpdateStatus(shipment *entity.Shipment) error {
	query := `UPDATE shipments SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, shipment.ID, shipment.Status)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	return nil
}

// List lista cabeceras de envíos paginadas, más recientes primero.
func (r *ShipmentRepo) List(limit, offset int) ([]*entity.Shipment, error) {
	query := `
		SELECT id, status, order_number, to_warehouse_id, expected_date, created_by, created_at, updated_at
		FROM shipments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var result []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.Status, &s.OrderNumber, &s.ToWarehouseID,
			&s.ExpectedDate, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

func (r *ShipmentRepo) get(query, id string) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Status, &s.OrderNumber, &s.ToWarehouseID,
		&s.ExpectedDate, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

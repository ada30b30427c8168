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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// Los métodos de escritura deben usarse con un Querier transaccional.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste una fila de stock. La tabla tiene UNIQUE (item_id,
// warehouse_id): un segundo create para la misma pareja devuelve
// domain.ErrDuplicateStock.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (id, item_id, warehouse_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.ItemID, stock.WarehouseID, stock.Quantity,
		stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateStock
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de stock por ID. Retorna nil si no existe.
func (r *StockRepo) GetByID(id string) (*entity.Stock, error) {
	return r.get(`SELECT id, item_id, warehouse_id, quantity, created_at, updated_at
		FROM stock WHERE id = $1`, id)
}

// GetByItemAndWarehouse obtiene el stock de un artículo en una bodega.
// Retorna nil si no existe.
func (r *StockRepo) GetByItemAndWarehouse(itemID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT id, item_id, warehouse_id, quantity, created_at, updated_at
		FROM stock WHERE item_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ID, &s.ItemID, &s.WarehouseID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by item/warehouse: %w", err)
	}
	return &s, nil
}

// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE) para serializar
// ajustes concurrentes. Solo tiene sentido dentro de una transacción.
func (r *StockRepo) GetByIDForUpdate(id string) (*entity.Stock, error) {
	return r.get(`SELECT id, item_id, warehouse_id, quantity, created_at, updated_at
		FROM stock WHERE id = $1 FOR UPDATE`, id)
}

// UpdateQuantity persiste la cantidad ya validada por el ledger.
func (r *StockRepo) UpdateQuantity(stock *entity.Stock) error {
	query := `UPDATE stock SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, stock.ID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

// ListByWarehouse lista el stock de una bodega, paginado.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT id, item_id, warehouse_id, quantity, created_at, updated_at
		FROM stock WHERE warehouse_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var result []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.ItemID, &s.WarehouseID, &s.Quantity,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

func (r *StockRepo) get(query, id string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ItemID, &s.WarehouseID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

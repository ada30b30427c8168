// Package searchindex mantiene un espejo de niveles de stock en Redis para
// consultas rápidas desde otros sistemas (dashboards, pickers). Siempre
// best-effort: el ledger sigue aunque Redis esté caído.
package searchindex

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Traslados-api/internal/application/inventory"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

var _ inventory.StockIndexer = (*RedisStockIndexer)(nil)

const indexTimeout = 2 * time.Second

// RedisStockIndexer implementa inventory.StockIndexer sobre Redis.
// Cada fila de stock se espeja en un hash stock:{id}.
type RedisStockIndexer struct {
	client *redis.Client
}

// NewRedisStockIndexer construye el indexador con el cliente dado.
func NewRedisStockIndexer(client *redis.Client) *RedisStockIndexer {
	return &RedisStockIndexer{client: client}
}

// IndexStock escribe el snapshot del stock en el hash stock:{id}.
func (i *RedisStockIndexer) IndexStock(ctx context.Context, stock *entity.Stock) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	key := fmt.Sprintf("stock:%s", stock.ID)
	err := i.client.HSet(ctx, key,
		"item_id", stock.ItemID,
		"warehouse_id", stock.WarehouseID,
		"quantity", stock.Quantity,
		"updated_at", stock.UpdatedAt.UTC().Format(time.RFC3339),
	).Err()
	if err != nil {
		return fmt.Errorf("redis: index stock %s: %w", stock.ID, err)
	}
	return nil
}

package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Traslados-api/internal/application/inventory"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: repos en memoria + runner que serializa transacciones con un mutex
// (el análogo grueso del bloqueo de fila) y revierte por snapshot en error.
// ──────────────────────────────────────────────────────────────────────────────

type ledgerStore struct {
	mu     sync.Mutex
	stocks map[string]entity.Stock
	items  map[string]entity.Item
	whs    map[string]entity.Warehouse
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		stocks: map[string]entity.Stock{},
		items:  map[string]entity.Item{},
		whs:    map[string]entity.Warehouse{},
	}
}

type ledgerTxRunner struct{ s *ledgerStore }

func (r *ledgerTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stocks := map[string]entity.Stock{}
	items := map[string]entity.Item{}
	for k, v := range r.s.stocks {
		stocks[k] = v
	}
	for k, v := range r.s.items {
		items[k] = v
	}
	if err := fn(&stockRepoFake{r.s}, &itemRepoFake{r.s}); err != nil {
		r.s.stocks = stocks
		r.s.items = items
		return err
	}
	return nil
}

type stockRepoFake struct{ s *ledgerStore }

func (r *stockRepoFake) Create(stock *entity.Stock) error {
	for _, existing := range r.s.stocks {
		if existing.ItemID == stock.ItemID && existing.WarehouseID == stock.WarehouseID {
			return domain.ErrDuplicateStock
		}
	}
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *stockRepoFake) GetByID(id string) (*entity.Stock, error) {
	if s, ok := r.s.stocks[id]; ok {
		c := s
		return &c, nil
	}
	return nil, nil
}

func (r *stockRepoFake) GetByItemAndWarehouse(itemID, warehouseID string) (*entity.Stock, error) {
	for _, s := range r.s.stocks {
		if s.ItemID == itemID && s.WarehouseID == warehouseID {
			c := s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *stockRepoFake) GetByIDForUpdate(id string) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *stockRepoFake) UpdateQuantity(stock *entity.Stock) error {
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *stockRepoFake) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.s.stocks {
		if s.WarehouseID == warehouseID {
			c := s
			out = append(out, &c)
		}
	}
	return out, nil
}

type itemRepoFake struct{ s *ledgerStore }

func (r *itemRepoFake) Create(item *entity.Item) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepoFake) GetByID(id string) (*entity.Item, error) {
	if i, ok := r.s.items[id]; ok {
		c := i
		return &c, nil
	}
	return nil, nil
}

func (r *itemRepoFake) Update(item *entity.Item) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *itemRepoFake) UpdateCost(id string, cost decimal.Decimal) error {
	if i, ok := r.s.items[id]; ok {
		i.Cost = cost
		r.s.items[id] = i
	}
	return nil
}

func (r *itemRepoFake) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *itemRepoFake) Delete(id string) error                        { delete(r.s.items, id); return nil }

type warehouseRepoFake struct{ s *ledgerStore }

func (r *warehouseRepoFake) Create(w *entity.Warehouse) error { r.s.whs[w.ID] = *w; return nil }
func (r *warehouseRepoFake) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.s.whs[id]; ok {
		c := w
		return &c, nil
	}
	return nil, nil
}
func (r *warehouseRepoFake) Update(w *entity.Warehouse) error { r.s.whs[w.ID] = *w; return nil }
func (r *warehouseRepoFake) List(limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r *warehouseRepoFake) Delete(id string) error { delete(r.s.whs, id); return nil }

// indexerFake registra llamadas y puede fallar a propósito.
type indexerFake struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (i *indexerFake) IndexStock(_ context.Context, stock *entity.Stock) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = append(i.calls, stock.ID)
	if i.fail {
		return errors.New("redis caído")
	}
	return nil
}

func newLedger(store *ledgerStore, indexer inventory.StockIndexer) *inventory.StockLedger {
	return inventory.NewStockLedger(
		&ledgerTxRunner{store},
		&stockRepoFake{store}, &itemRepoFake{store}, &warehouseRepoFake{store},
		indexer, logger.Nop(),
	)
}

func seed(store *ledgerStore) {
	store.items["item-1"] = entity.Item{ID: "item-1", SKU: "SKU-001", Name: "Tornillo 3/4", Cost: decimal.NewFromInt(100)}
	store.whs["wh-1"] = entity.Warehouse{ID: "wh-1", Name: "Bodega Central"}
	store.stocks["stock-1"] = entity.Stock{ID: "stock-1", ItemID: "item-1", WarehouseID: "wh-1", Quantity: 50}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerCreate_AltaNueva(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	store.whs["wh-2"] = entity.Warehouse{ID: "wh-2", Name: "Sucursal Norte"}
	ledger := newLedger(store, nil)

	stock, err := ledger.Create(context.Background(), inventory.CreateStockInput{
		ItemID: "item-1", WarehouseID: "wh-2", Quantity: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), stock.Quantity)
	assert.Equal(t, int64(20), store.stocks[stock.ID].Quantity)
}

func TestLedgerCreate_ParejaDuplicada(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Create(context.Background(), inventory.CreateStockInput{
		ItemID: "item-1", WarehouseID: "wh-1", Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateStock)
}

func TestLedgerCreate_ReferenciasInexistentes(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Create(context.Background(), inventory.CreateStockInput{
		ItemID: "item-fantasma", WarehouseID: "wh-1",
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = ledger.Create(context.Background(), inventory.CreateStockInput{
		ItemID: "item-1", WarehouseID: "wh-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

func TestLedgerCreate_CantidadNegativa(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Create(context.Background(), inventory.CreateStockInput{
		ItemID: "item-1", WarehouseID: "wh-1", Quantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive: cantidades y costo promedio ponderado
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerReceive_RecalculaCostoPromedio(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	// 50 uds a $100 + 50 uds a $200 → promedio $150.
	stock, err := ledger.Receive(context.Background(), "stock-1", 50, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.Equal(t, int64(100), stock.Quantity)
	assert.True(t, store.items["item-1"].Cost.Equal(decimal.NewFromInt(150)),
		"costo promedio: esperado 150, obtenido %s", store.items["item-1"].Cost)
}

func TestLedgerReceive_CantidadInvalida(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Receive(context.Background(), "stock-1", 0, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestLedgerReceive_StockInexistente(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Receive(context.Background(), "stock-fantasma", 10, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust: la invariante cantidad >= 0
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerAdjust_DeltaPositivoYNegativo(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	stock, err := ledger.Adjust(context.Background(), "stock-1", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(75), stock.Quantity)

	stock, err = ledger.Adjust(context.Background(), "stock-1", -75)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock.Quantity, "bajar exactamente a cero es válido")
}

func TestLedgerAdjust_SobregiroDejaIntacto(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Adjust(context.Background(), "stock-1", -51)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(50), store.stocks["stock-1"].Quantity)
}

func TestLedgerAdjust_StockInexistente(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	_, err := ledger.Adjust(context.Background(), "stock-fantasma", 1)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

// Dos ajustes simultáneos que juntos sobregiran: exactamente uno falla.
func TestLedgerAdjust_ConcurrenciaSobregiro(t *testing.T) {
	store := newLedgerStore()
	seed(store) // quantity 50

	ledger := newLedger(store, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Adjust(context.Background(), "stock-1", -30)
		}(i)
	}
	wg.Wait()

	var oks, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, oks)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(20), store.stocks["stock-1"].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Espejo en el índice: siempre best-effort
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerMirror_IndexaTrasAjuste(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	idx := &indexerFake{}
	ledger := newLedger(store, idx)

	_, err := ledger.Adjust(context.Background(), "stock-1", -10)
	require.NoError(t, err)
	assert.Equal(t, []string{"stock-1"}, idx.calls)
}

func TestLedgerMirror_FalloDelIndiceNoPropaga(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	idx := &indexerFake{fail: true}
	ledger := newLedger(store, idx)

	stock, err := ledger.Adjust(context.Background(), "stock-1", -10)
	require.NoError(t, err, "el ajuste no debe fallar porque el índice falle")
	assert.Equal(t, int64(40), stock.Quantity)
	assert.Equal(t, int64(40), store.stocks["stock-1"].Quantity)
}

func TestLedgerFind(t *testing.T) {
	store := newLedgerStore()
	seed(store)
	ledger := newLedger(store, nil)

	stock, err := ledger.Find(context.Background(), "item-1", "wh-1")
	require.NoError(t, err)
	assert.Equal(t, "stock-1", stock.ID)

	_, err = ledger.Find(context.Background(), "item-1", "wh-fantasma")
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

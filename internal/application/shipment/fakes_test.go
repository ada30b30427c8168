package shipment_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria compartido por todos los repos fake.
//
// Las transacciones se serializan con un mutex global, el equivalente grueso
// del bloqueo de fila de PostgreSQL: dos callbacks nunca corren entrelazados.
// Al fallar el callback se restaura el snapshot (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu            sync.Mutex
	stocks        map[string]entity.Stock
	items         map[string]entity.Item
	warehouses    map[string]entity.Warehouse
	users         map[string]entity.User
	shipments     map[string]entity.Shipment
	transfers     map[string]entity.Transfer
	transferOrder []string
	confirmations map[string]entity.Confirmation
	confirmOrder  []string
}

func newMemStore() *memStore {
	return &memStore{
		stocks:        map[string]entity.Stock{},
		items:         map[string]entity.Item{},
		warehouses:    map[string]entity.Warehouse{},
		users:         map[string]entity.User{},
		shipments:     map[string]entity.Shipment{},
		transfers:     map[string]entity.Transfer{},
		confirmations: map[string]entity.Confirmation{},
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.confirmations {
		c.confirmations[k] = v
	}
	c.transferOrder = append([]string(nil), s.transferOrder...)
	c.confirmOrder = append([]string(nil), s.confirmOrder...)
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.stocks = snap.stocks
	s.items = snap.items
	s.warehouses = snap.warehouses
	s.users = snap.users
	s.shipments = snap.shipments
	s.transfers = snap.transfers
	s.transferOrder = snap.transferOrder
	s.confirmations = snap.confirmations
	s.confirmOrder = snap.confirmOrder
}

// fakeTxRunner serializa callbacks con el mutex del store y hace rollback por
// snapshot cuando el callback devuelve error. Satisface los puertos TxRunner
// de inventory y de shipment.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := fn(&memStockRepo{r.store}, &memItemRepo{r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunShipment(_ context.Context, fn func(
	shipmentRepo repository.ShipmentRepository,
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	confirmationRepo repository.ConfirmationRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	err := fn(
		&memShipmentRepo{r.store},
		&memTransferRepo{r.store},
		&memStockRepo{r.store},
		&memConfirmationRepo{r.store},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ── Repos fake ────────────────────────────────────────────────────────────────
// No toman el mutex: dentro de una tx lo sostiene el runner y las lecturas
// sueltas de los tests son secuenciales.

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Create(stock *entity.Stock) error {
	for _, existing := range r.s.stocks {
		if existing.ItemID == stock.ItemID && existing.WarehouseID == stock.WarehouseID {
			return domain.ErrDuplicateStock
		}
	}
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *memStockRepo) GetByID(id string) (*entity.Stock, error) {
	if s, ok := r.s.stocks[id]; ok {
		c := s
		return &c, nil
	}
	return nil, nil
}

func (r *memStockRepo) GetByItemAndWarehouse(itemID, warehouseID string) (*entity.Stock, error) {
	for _, s := range r.s.stocks {
		if s.ItemID == itemID && s.WarehouseID == warehouseID {
			c := s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) GetByIDForUpdate(id string) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *memStockRepo) UpdateQuantity(stock *entity.Stock) error {
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.s.stocks {
		if s.WarehouseID == warehouseID {
			c := s
			out = append(out, &c)
		}
	}
	return out, nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	if i, ok := r.s.items[id]; ok {
		c := i
		return &c, nil
	}
	return nil, nil
}

func (r *memItemRepo) Update(item *entity.Item) error {
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) UpdateCost(id string, cost decimal.Decimal) error {
	if i, ok := r.s.items[id]; ok {
		i.Cost = cost
		r.s.items[id] = i
	}
	return nil
}

func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, i := range r.s.items {
		c := i
		out = append(out, &c)
	}
	return out, nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.s.items, id)
	return nil
}

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		c := w
		return &c, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		c := w
		out = append(out, &c)
	}
	return out, nil
}

func (r *memWarehouseRepo) Delete(id string) error {
	delete(r.s.warehouses, id)
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(u *entity.User) error {
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		c := u
		return &c, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

type memShipmentRepo struct{ s *memStore }

func (r *memShipmentRepo) Create(sh *entity.Shipment) error {
	c := *sh
	c.Transfers = nil // la cabecera no arrastra traslados
	r.s.shipments[sh.ID] = c
	return nil
}

func (r *memShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	if sh, ok := r.s.shipments[id]; ok {
		c := sh
		return &c, nil
	}
	return nil, nil
}

func (r *memShipmentRepo) GetByIDForUpdate(id string) (*entity.Shipment, error) {
	return r.GetByID(id)
}

func (r *memShipmentRepo) UpdateStatus(sh *entity.Shipment) error {
	if existing, ok := r.s.shipments[sh.ID]; ok {
		existing.Status = sh.Status
		existing.UpdatedAt = sh.UpdatedAt
		r.s.shipments[sh.ID] = existing
	}
	return nil
}

func (r *memShipmentRepo) List(limit, offset int) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, sh := range r.s.shipments {
		c := sh
		out = append(out, &c)
	}
	return out, nil
}

type memTransferRepo struct{ s *memStore }

func (r *memTransferRepo) Create(t *entity.Transfer) error {
	r.s.transfers[t.ID] = *t
	r.s.transferOrder = append(r.s.transferOrder, t.ID)
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.s.transfers[id]; ok {
		c := t
		return &c, nil
	}
	return nil, nil
}

func (r *memTransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *memTransferRepo) ListByShipment(shipmentID string) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, id := range r.s.transferOrder {
		t := r.s.transfers[id]
		if t.ShipmentID == shipmentID {
			c := t
			out = append(out, &c)
		}
	}
	return out, nil
}

type memConfirmationRepo struct{ s *memStore }

func (r *memConfirmationRepo) Create(c *entity.Confirmation) error {
	r.s.confirmations[c.ID] = *c
	r.s.confirmOrder = append(r.s.confirmOrder, c.ID)
	return nil
}

func (r *memConfirmationRepo) ListByTransfer(transferID string) ([]*entity.Confirmation, error) {
	var out []*entity.Confirmation
	for _, id := range r.s.confirmOrder {
		c := r.s.confirmations[id]
		if c.TransferID == transferID {
			cc := c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *memConfirmationRepo) SumByTransfer(transferID string) (int64, error) {
	var total int64
	for _, c := range r.s.confirmations {
		if c.TransferID == transferID {
			total += c.Quantity
		}
	}
	return total, nil
}

// ── Datos semilla ─────────────────────────────────────────────────────────────

func seedWarehouse(s *memStore, id, name string) {
	s.warehouses[id] = entity.Warehouse{ID: id, Name: name}
}

func seedItem(s *memStore, id, sku, name string) {
	s.items[id] = entity.Item{ID: id, SKU: sku, Name: name}
}

func seedUser(s *memStore, id, name, email string) {
	s.users[id] = entity.User{ID: id, Name: name, Email: email, Role: entity.RoleBodeguero, Status: "active"}
}

func seedStock(s *memStore, id, itemID, warehouseID string, qty int64) {
	s.stocks[id] = entity.Stock{ID: id, ItemID: itemID, WarehouseID: warehouseID, Quantity: qty}
}

func seedShipment(s *memStore, id, status, toWarehouseID, createdBy string, expected time.Time) {
	s.shipments[id] = entity.Shipment{
		ID: id, Status: status, OrderNumber: "OC-" + id,
		ToWarehouseID: toWarehouseID, ExpectedDate: expected, CreatedBy: createdBy,
	}
}

func seedTransfer(s *memStore, id, shipmentID, stockID string, qty int64) {
	s.transfers[id] = entity.Transfer{ID: id, ShipmentID: shipmentID, StockID: stockID, Quantity: qty}
	s.transferOrder = append(s.transferOrder, id)
}

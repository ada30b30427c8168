package shipment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/shipment"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// Reloj fijo para los tests: lunes 6 de enero de 2025.
// Lunes + 3 días hábiles = jueves 9 de enero.
var (
	lunes  = time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC)
	jueves = time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
)

type testEnv struct {
	store     *memStore
	workflow  *shipment.Workflow
	publisher *shipment.Publisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	runner := &fakeTxRunner{store: store}
	log := logger.Nop()
	publisher := shipment.NewPublisher(8, log)
	w := shipment.NewWorkflow(
		shipment.WorkflowConfig{MinLeadDays: 3, Now: func() time.Time { return lunes }},
		runner,
		&memShipmentRepo{store}, &memTransferRepo{store}, &memStockRepo{store},
		&memConfirmationRepo{store},
		&memItemRepo{store}, &memWarehouseRepo{store}, &memUserRepo{store},
		publisher, nil, log,
	)

	seedWarehouse(store, "wh-central", "Bodega Central")
	seedWarehouse(store, "wh-norte", "Sucursal Norte")
	seedItem(store, "item-1", "SKU-001", "Tornillo 3/4")
	seedItem(store, "item-2", "SKU-002", "Tuerca 3/4")
	seedUser(store, "user-1", "Laura Gómez", "laura@traslados.local")
	seedStock(store, "stock-1", "item-1", "wh-central", 100)
	seedStock(store, "stock-2", "item-2", "wh-central", 5)

	return &testEnv{store: store, workflow: w, publisher: publisher}
}

func validRequest() dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		ToWarehouseID: "wh-norte",
		OrderNumber:   "OC-2025-001",
		ExpectedDate:  jueves,
		Transfers: []dto.TransferRequest{
			{StockID: "stock-1", Quantity: 10},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear envío
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateShipment_CreaPendienteConTraslados(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.workflow.Create(context.Background(), validRequest(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.ShipmentStatusPending, out.Status)
	assert.Equal(t, "OC-2025-001", out.OrderNumber)
	assert.Equal(t, "Sucursal Norte", out.ToWarehouse)
	assert.Equal(t, "user-1", out.CreatedBy)
	require.Len(t, out.Transfers, 1)
	assert.Equal(t, "stock-1", out.Transfers[0].StockID)
	assert.Equal(t, int64(10), out.Transfers[0].Quantity)
	assert.Equal(t, int64(0), out.Transfers[0].ConfirmedQty)
	assert.Equal(t, "SKU-001", out.Transfers[0].ItemSKU)
	assert.Equal(t, "Bodega Central", out.Transfers[0].FromWarehouse)

	// Crear no descuenta stock: la verificación es consultiva.
	assert.Equal(t, int64(100), env.store.stocks["stock-1"].Quantity)
}

func TestCreateShipment_FechaMinimaExactaEsValida(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.ExpectedDate = jueves // exactamente lunes + 3 días hábiles

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.NoError(t, err)
}

func TestCreateShipment_LeadTimeInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.ExpectedDate = lunes.AddDate(0, 0, 2) // miércoles: solo 2 días hábiles

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	var constraintErr *domain.ConstraintViolationError
	require.ErrorAs(t, err, &constraintErr)
	assert.Empty(t, env.store.shipments, "no debe persistirse ningún envío")
}

func TestCreateShipment_FinDeSemanaNoCuentaComoHabil(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	// Viernes 10: entre lunes y viernes hay 4 días calendario pero solo
	// 4 hábiles; jueves es el mínimo, viernes también vale.
	in.ExpectedDate = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.NoError(t, err)

	// Sábado 11 también: posterior al mínimo.
	in.ExpectedDate = time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	in.OrderNumber = "OC-2025-002"
	_, err = env.workflow.Create(context.Background(), in, "user-1")
	assert.NoError(t, err)
}

func TestCreateShipment_BodegaDestinoInexistente(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.ToWarehouseID = "wh-fantasma"

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

func TestCreateShipment_SinTraslados(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.Transfers = nil

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	var constraintErr *domain.ConstraintViolationError
	assert.ErrorAs(t, err, &constraintErr)
}

func TestCreateShipment_StockInexistente(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.Transfers = []dto.TransferRequest{{StockID: "stock-fantasma", Quantity: 1}}

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

func TestCreateShipment_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.Transfers = []dto.TransferRequest{{StockID: "stock-1", Quantity: 0}}

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateShipment_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.Transfers = []dto.TransferRequest{{StockID: "stock-2", Quantity: 6}} // hay 5

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// El primer traslado inválido aborta todo: ni el envío ni los traslados
// anteriores de la lista quedan persistidos.
func TestCreateShipment_PrimerErrorAbortaTodo(t *testing.T) {
	env := newTestEnv(t)
	in := validRequest()
	in.Transfers = []dto.TransferRequest{
		{StockID: "stock-1", Quantity: 10},       // válido
		{StockID: "stock-2", Quantity: 99},       // insuficiente
		{StockID: "stock-fantasma", Quantity: 1}, // también inválido, no se alcanza
	}

	_, err := env.workflow.Create(context.Background(), in, "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"debe reportarse el error del primer traslado inválido en orden de lista")
	assert.Empty(t, env.store.shipments)
	assert.Empty(t, env.store.transfers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transicionar envío
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_AceptarPendiente(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-1", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)

	out, err := env.workflow.Transition(context.Background(), "ship-1", entity.ShipmentStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusAccepted, out.Status)
}

func TestTransition_DenegarPendiente(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-1", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)

	out, err := env.workflow.Transition(context.Background(), "ship-1", entity.ShipmentStatusDenied)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusDenied, out.Status)
}

func TestTransition_EstadoDestinoInvalido(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-1", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)

	_, err := env.workflow.Transition(context.Background(), "ship-1", "PENDING")
	var constraintErr *domain.ConstraintViolationError
	assert.ErrorAs(t, err, &constraintErr)
}

func TestTransition_EnvioInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.workflow.Transition(context.Background(), "ship-fantasma", entity.ShipmentStatusAccepted)
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

// ACCEPTED y DENIED son terminales: ninguna transición posterior es válida.
func TestTransition_EstadosTerminales(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-acc", entity.ShipmentStatusAccepted, "wh-norte", "user-1", jueves)
	seedShipment(env.store, "ship-den", entity.ShipmentStatusDenied, "wh-norte", "user-1", jueves)

	for _, id := range []string{"ship-acc", "ship-den"} {
		for _, destino := range []string{entity.ShipmentStatusAccepted, entity.ShipmentStatusDenied} {
			_, err := env.workflow.Transition(context.Background(), id, destino)
			var notPending *domain.ShipmentNotPendingError
			require.ErrorAs(t, err, &notPending, "envío %s → %s", id, destino)
			assert.Equal(t, id, notPending.ShipmentID)
		}
	}
}

func TestTransition_EmiteEventoTrasCommit(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-1", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)

	_, err := env.workflow.Transition(context.Background(), "ship-1", entity.ShipmentStatusAccepted)
	require.NoError(t, err)

	select {
	case ev := <-env.publisher.Events():
		assert.Equal(t, "ship-1", ev.Shipment.ID)
		assert.Equal(t, entity.ShipmentStatusPending, ev.OldStatus)
		assert.Equal(t, entity.ShipmentStatusAccepted, ev.NewStatus)
		assert.Equal(t, entity.ShipmentStatusAccepted, ev.Shipment.Status)
	default:
		t.Fatal("la transición debe publicar un evento de cambio de estado")
	}
}

func TestTransition_FallidaNoEmiteEvento(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-1", entity.ShipmentStatusDenied, "wh-norte", "user-1", jueves)

	_, err := env.workflow.Transition(context.Background(), "ship-1", entity.ShipmentStatusAccepted)
	require.Error(t, err)

	select {
	case <-env.publisher.Events():
		t.Fatal("una transición fallida no debe publicar evento")
	default:
	}
}

// El buffer lleno descarta el evento sin bloquear la transición.
func TestTransition_BufferLlenoNoBloquea(t *testing.T) {
	store := newMemStore()
	runner := &fakeTxRunner{store: store}
	log := logger.Nop()
	publisher := shipment.NewPublisher(1, log)
	w := shipment.NewWorkflow(
		shipment.WorkflowConfig{MinLeadDays: 3, Now: func() time.Time { return lunes }},
		runner,
		&memShipmentRepo{store}, &memTransferRepo{store}, &memStockRepo{store},
		&memConfirmationRepo{store},
		&memItemRepo{store}, &memWarehouseRepo{store}, &memUserRepo{store},
		publisher, nil, log,
	)
	seedWarehouse(store, "wh-norte", "Sucursal Norte")
	seedShipment(store, "ship-1", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)
	seedShipment(store, "ship-2", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)

	done := make(chan error, 2)
	go func() {
		_, err := w.Transition(context.Background(), "ship-1", entity.ShipmentStatusAccepted)
		done <- err
	}()
	go func() {
		_, err := w.Transition(context.Background(), "ship-2", entity.ShipmentStatusDenied)
		done <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("la transición no debe bloquearse por el buffer de eventos")
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_EnvioInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.workflow.Get(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrShipmentNotFound))
}

func TestList_DevuelveCabeceras(t *testing.T) {
	env := newTestEnv(t)
	seedShipment(env.store, "ship-1", entity.ShipmentStatusPending, "wh-norte", "user-1", jueves)
	seedShipment(env.store, "ship-2", entity.ShipmentStatusAccepted, "wh-norte", "user-1", jueves)

	out, err := env.workflow.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Traslados-api/internal/application/auth"
	"github.com/jhoicas/Traslados-api/internal/application/inventory"
	"github.com/jhoicas/Traslados-api/internal/application/shipment"
	"github.com/jhoicas/Traslados-api/internal/application/usecase"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	ItemUC      *usecase.ItemUseCase
	Ledger      *inventory.StockLedger
	Workflow    *shipment.Workflow
	Engine      *shipment.ConfirmationEngine
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Las mutaciones de catálogo y stock
// requieren rol admin o bodeguero; los vendedores pueden crear envíos y
// consultar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	mutador := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido; mutaciones solo admin/bodeguero)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", mutador, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", mutador, warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)

	// Items (protegido; mutaciones solo admin/bodeguero)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", mutador, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", mutador, itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Stocks (protegido; mutaciones solo admin/bodeguero)
	stockHandler := NewStockHandler(deps.Ledger)
	stocks := protected.Group("/stocks")
	stocks.Post("/", mutador, stockHandler.Create)
	stocks.Get("/find", stockHandler.Find)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Post("/:id/receive", mutador, stockHandler.Receive)
	stocks.Post("/:id/adjust", mutador, stockHandler.Adjust)
	warehouses.Get("/:warehouse_id/stocks", stockHandler.ListByWarehouse)

	// Shipments (protegido; cualquier rol crea y consulta, la transición es de
	// admin/bodeguero)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.Workflow, deps.Engine)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Post("/:id/transition", mutador, shipmentHandler.Transition)
	shipments.Get("/:id/manifest", shipmentHandler.Manifest)

	// Confirmaciones de traslado (protegido; solo admin/bodeguero)
	transfers := protected.Group("/transfers")
	transfers.Post("/:id/confirmations", mutador, shipmentHandler.Confirm)
}

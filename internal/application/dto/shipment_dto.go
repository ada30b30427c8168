package dto

import "time"

// TransferRequest una línea de traslado dentro de un envío.
type TransferRequest struct {
	StockID  string `json:"stock_id" validate:"required,uuid"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateShipmentRequest entrada para crear un envío con sus traslados.
// La fecha esperada debe ser al menos 3 días hábiles posterior a hoy.
type CreateShipmentRequest struct {
	ToWarehouseID string            `json:"to_warehouse_id" validate:"required,uuid"`
	OrderNumber   string            `json:"order_number" validate:"required,min=1,max=50"`
	ExpectedDate  time.Time         `json:"expected_date" validate:"required"`
	Transfers     []TransferRequest `json:"transfers" validate:"required,dive"`
}

// TransitionShipmentRequest entrada para aceptar o denegar un envío.
type TransitionShipmentRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED DENIED"`
}

// ConfirmTransferRequest entrada para confirmar unidades de un traslado.
type ConfirmTransferRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// TransferResponse una línea de traslado con su contexto cargado (stock,
// artículo y bodega de origen) para que el cliente no necesite otro fetch.
type TransferResponse struct {
	ID              string    `json:"id"`
	StockID         string    `json:"stock_id"`
	Quantity        int64     `json:"quantity"`
	ConfirmedQty    int64     `json:"confirmed_qty"`
	ItemID          string    `json:"item_id"`
	ItemSKU         string    `json:"item_sku"`
	ItemName        string    `json:"item_name"`
	FromWarehouseID string    `json:"from_warehouse_id"`
	FromWarehouse   string    `json:"from_warehouse"`
	StockQuantity   int64     `json:"stock_quantity"` // existencia viva al momento de la consulta
	CreatedAt       time.Time `json:"created_at"`
}

// ShipmentResponse envío completo con traslados anidados.
type ShipmentResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	OrderNumber   string             `json:"order_number"`
	ToWarehouseID string             `json:"to_warehouse_id"`
	ToWarehouse   string             `json:"to_warehouse"`
	ExpectedDate  time.Time          `json:"expected_date"`
	CreatedBy     string             `json:"created_by"`
	Transfers     []TransferResponse `json:"transfers"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ShipmentListResponse lista paginada de envíos (sin traslados anidados).
type ShipmentListResponse struct {
	Items []ShipmentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ConfirmationResponse salida de una confirmación aplicada.
type ConfirmationResponse struct {
	ID            string    `json:"id"`
	TransferID    string    `json:"transfer_id"`
	Quantity      int64     `json:"quantity"`
	RemainingQty  int64     `json:"remaining_qty"`  // pendiente del traslado tras confirmar
	StockQuantity int64     `json:"stock_quantity"` // existencia del stock tras el descuento
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ManifestLine una línea de la guía de traslado impresa.
type ManifestLine struct {
	ItemSKU       string
	ItemName      string
	FromWarehouse string
	Quantity      int64
	ConfirmedQty  int64
}

// ShipmentManifest datos para la guía de traslado en PDF.
type ShipmentManifest struct {
	ShipmentID   string
	OrderNumber  string
	Status       string
	ToWarehouse  string
	ExpectedDate time.Time
	CreatedBy    string // nombre del solicitante
	Lines        []ManifestLine
	GeneratedAt  time.Time
}

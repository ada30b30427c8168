package shipment

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios del flujo de envíos atados a esa tx. O se confirman todas las
// escrituras (cabecera, traslados, confirmación, delta de stock) o ninguna.
type TxRunner interface {
	RunShipment(ctx context.Context, fn func(
		shipmentRepo repository.ShipmentRepository,
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		confirmationRepo repository.ConfirmationRepository,
	) error) error
}

// ManifestGenerator genera la guía de traslado imprimible de un envío.
type ManifestGenerator interface {
	GenerateManifestPDF(ctx context.Context, m dto.ShipmentManifest) ([]byte, error)
}

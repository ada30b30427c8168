package shipment

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
)

// Manifest genera la guía de traslado en PDF de un envío: destino, fecha
// esperada y una línea por traslado con artículo, bodega de origen y
// cantidades solicitada/confirmada.
func (w *Workflow) Manifest(ctx context.Context, shipmentID string) ([]byte, error) {
	if w.manifests == nil {
		return nil, domain.ErrNotFound
	}
	resp, err := w.loadResponse(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	creador := resp.CreatedBy
	if user, err := w.userRepo.GetByID(resp.CreatedBy); err == nil && user != nil {
		creador = user.Name
	}

	m := dto.ShipmentManifest{
		ShipmentID:   resp.ID,
		OrderNumber:  resp.OrderNumber,
		Status:       resp.Status,
		ToWarehouse:  resp.ToWarehouse,
		ExpectedDate: resp.ExpectedDate,
		CreatedBy:    creador,
		GeneratedAt:  w.cfg.Now(),
	}
	for _, t := range resp.Transfers {
		m.Lines = append(m.Lines, dto.ManifestLine{
			ItemSKU:       t.ItemSKU,
			ItemName:      t.ItemName,
			FromWarehouse: t.FromWarehouse,
			Quantity:      t.Quantity,
			ConfirmedQty:  t.ConfirmedQty,
		})
	}
	return w.manifests.GenerateManifestPDF(ctx, m)
}

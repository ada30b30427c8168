// Package pdf implementa la generación de la guía de traslado imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Guía de traslado + N° Orden  │  Estado + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Bodega destino / Fecha esperada / Solicitante      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Origen | Solicitado | Confirmado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación + espacio para firmas           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/shipment"
)

var _ shipment.ManifestGenerator = (*MarotoManifestGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoManifestGenerator implementa shipment.ManifestGenerator usando Maroto v2.
type MarotoManifestGenerator struct{}

// NewMarotoManifestGenerator construye el generador.
func NewMarotoManifestGenerator() *MarotoManifestGenerator { return &MarotoManifestGenerator{} }

// GenerateManifestPDF genera la guía de traslado y devuelve sus bytes.
func (g *MarotoManifestGenerator) GenerateManifestPDF(_ context.Context, m dto.ShipmentManifest) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de Traslado", true).
		Build()

	doc := maroto.New(cfg)

	doc.AddRows(headerRow(m))
	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	doc.AddRows(destinationRow(m))
	doc.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	doc.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(m.Lines) {
		doc.AddRows(r)
	}

	doc.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	doc.AddRows(footerRows(m)...)

	out, err := doc.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + N° orden (izq) y estado + fecha esperada (der).
func headerRow(m dto.ShipmentManifest) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("GUÍA DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden: "+nonEmpty(m.OrderNumber, m.ShipmentID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(statusLabel(m.Status), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("Fecha esperada: "+m.ExpectedDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// destinationRow: bodega destino + solicitante.
func destinationRow(m dto.ShipmentManifest) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Bodega: %s   |   Solicitado por: %s",
				nonEmpty(m.ToWarehouse, "—"),
				nonEmpty(m.CreatedBy, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de traslados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Bodega origen", 3, align.Left),
		h("Solicitado", 1, align.Right),
		h("Confirmado", 2, align.Right),
	)
}

// tableLineRows: una fila por traslado del envío.
func tableLineRows(lines []dto.ManifestLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.ItemSKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(l.FromWarehouse, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", l.ConfirmedQty),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: fecha de generación + espacio para firmas de entrega/recepción.
func footerRows(m dto.ShipmentManifest) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Generado: "+m.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)),
		row.New(8),
		row.New(10).Add(
			col.New(5).Add(
				text.New("_______________________", props.Text{Size: 9, Align: align.Center, Top: 1}),
				text.New("Entrega (bodega origen)", props.Text{Size: 7, Align: align.Center, Top: 6, Color: colorGray}),
			),
			col.New(2),
			col.New(5).Add(
				text.New("_______________________", props.Text{Size: 9, Align: align.Center, Top: 1}),
				text.New("Recibe (bodega destino)", props.Text{Size: 7, Align: align.Center, Top: 6, Color: colorGray}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// statusLabel traduce el estado para la guía impresa.
func statusLabel(status string) string {
	switch status {
	case "PENDING":
		return "PENDIENTE"
	case "ACCEPTED":
		return "ACEPTADO"
	case "DENIED":
		return "DENEGADO"
	}
	return status
}

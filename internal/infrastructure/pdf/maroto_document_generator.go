// Package pdf implementa la generación de los documentos del pedido con
// Maroto v2: factura proforma y albarán de entrega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del documento  │  N° Pedido + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Empresa + INN                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | RAL | P.Unit | Subtotal           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Verificar en tiempo de compilación que el generador implementa el puerto.
var _ ports.DocumentGenerator = (*MarotoDocumentGenerator)(nil)

// MarotoDocumentGenerator implementa ports.DocumentGenerator usando Maroto v2.
type MarotoDocumentGenerator struct{}

// NewMarotoDocumentGenerator construye el generador.
func NewMarotoDocumentGenerator() *MarotoDocumentGenerator { return &MarotoDocumentGenerator{} }

// Invoice genera la factura proforma del pedido.
func (g *MarotoDocumentGenerator) Invoice(data ports.OrderDocumentData) ([]byte, error) {
	return g.render("FACTURA PROFORMA", data, true)
}

// DeliveryNote genera el albarán de entrega (sin precios).
func (g *MarotoDocumentGenerator) DeliveryNote(data ports.OrderDocumentData) ([]byte, error) {
	return g.render("ALBARÁN DE ENTREGA", data, false)
}

func (g *MarotoDocumentGenerator) render(title string, data ports.OrderDocumentData, withPrices bool) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(withPrices))
	for _, r := range tableLineRows(data.Lines, withPrices) {
		m.AddRows(r)
	}

	if withPrices {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalRow(data.Total))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del documento (izq) y número + fecha del pedido (der).
func headerRow(title string, data ports.OrderDocumentData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Pedido "+data.OrderID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+data.OrderDate, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del comprador.
func customerRow(data ports.OrderDocumentData) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Empresa: %s   |   INN: %s",
				nonEmpty(data.CompanyName, "—"), nonEmpty(data.TaxID, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow(withPrices bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if !withPrices {
		return row.New(8).Add(
			h("Cant.", 2, align.Center),
			h("Producto", 8, align.Left),
			h("RAL", 2, align.Center),
		)
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("RAL", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del pedido.
func tableLineRows(lines []ports.DocumentLine, withPrices bool) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		ral := nonEmpty(l.ColorCode, "—")
		if !withPrices {
			result = append(result, row.New(7).Add(
				col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(8).Add(text.New(l.Title, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
				col.New(2).Add(text.New(ral, props.Text{Size: 8, Align: align.Center, Top: 1})),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.Title, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(ral, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.UnitPrice, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.Subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalRow: total del pedido alineado a la derecha.
func totalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(
			text.New("TOTAL: "+total, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

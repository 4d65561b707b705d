// Package pdf genera la representación imprimible de las órdenes de compra a proveedores.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor           │  N° Orden + Fecha + Sucursal │
//	│  CONTACTO: nombre / teléfono                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Desc% | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Total estimado                         │
//	│  QR con el ID de la orden                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ usecase.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	order *entity.PurchaseOrder,
	supplier *entity.Supplier,
	lines []usecase.PurchaseOrderLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+order.ID, true).
		WithAuthor("supply-chain-api", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(order, supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order, lines))
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(order.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(text.New("Presentar este código al recibir la mercadería.", props.Text{
			Size: 8, Top: 4, Left: 3, Color: colorGray,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(order *entity.PurchaseOrder, supplier *entity.Supplier) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(supplier.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Proveedor #"+strconv.Itoa(supplier.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("Fecha: %s   Sucursal: %d", order.CreatedAt.Format("02/01/2006"), order.BranchID), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func contactRow(order *entity.PurchaseOrder, supplier *entity.Supplier) core.Row {
	name := nonEmpty(order.ContactName, supplier.ContactName)
	phone := nonEmpty(order.ContactPhone, supplier.ContactPhone)
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", nonEmpty(name, "-"), nonEmpty(phone, "-")), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lines []usecase.PurchaseOrderLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.Discount.StringFixed(0)+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(order *entity.PurchaseOrder, lines []usecase.PurchaseOrderLineForPDF) core.Row {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades:"),
			text.New("TOTAL ESTIMADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(order.TotalUnits()), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(money(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// money formatea con separador de miles y dos decimales: 1234567.5 → "$1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := false
	if s[0] == '-' {
		neg, s = true, s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := formatThousands(intPart) + "," + frac
	if neg {
		out = "-" + out
	}
	return "$" + out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// Package pdf genera la factura imprimible de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + fecha de entrega │  Invoice <id>          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre (teléfono) / dirección / notas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Unit | Price | Qty | Amount                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Delivery / Discount / Grand Total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del mensaje compartido + leyenda de la tienda   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/organic-orders/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 110, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var printer = message.NewPrinter(language.English)

// ── Generator ─────────────────────────────────────────────────────────────────

// InvoiceGenerator arma la factura con Maroto v2.
type InvoiceGenerator struct {
	shopName string
	footer   string
	currency string
}

// NewInvoiceGenerator construye el generador con los datos de la tienda.
func NewInvoiceGenerator(shopName, footer, currencySymbol string) *InvoiceGenerator {
	return &InvoiceGenerator{
		shopName: nonEmpty(shopName, "Organic Grocery"),
		footer:   footer,
		currency: pdfCurrency(currencySymbol),
	}
}

// Filename nombre de descarga de la factura.
func Filename(orderID string) string { return orderID + ".pdf" }

// Render genera el PDF de la orden. shareLink, si no está vacío, se imprime como QR.
func (g *InvoiceGenerator) Render(_ context.Context, order entity.Order, shareLink string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+order.ID, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.itemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.footerRows(shareLink) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *InvoiceGenerator) headerRow(order entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Delivery: "+order.Slot.Format("Mon Jan 02 2006"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+order.CreatedAt.Format("02 Jan 2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(order entity.Order) core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%s (%s)", order.Name, order.Phone), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(order.Address, props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New("Notes: "+nonEmpty(order.Notes, "-"), props.Text{Size: 8, Top: 16}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 5, align.Left),
		h("Unit", 2, align.Left),
		h("Price", 2, align.Right),
		h("Qty", 1, align.Right),
		h("Amount", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *InvoiceGenerator) itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.Qty.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(it.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *InvoiceGenerator) totalsRow(order entity.Order) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Delivery:", 7),
			label("Discount:", 13),
			grand("Grand Total:", 20),
		),
		col.New(3).Add(
			value(g.money(order.Subtotal), 1),
			value(g.money(order.DeliveryFee), 7),
			value(g.money(order.Discount), 13),
			grand(g.money(order.Total), 20),
		),
	)
}

func (g *InvoiceGenerator) footerRows(shareLink string) []core.Row {
	var rows []core.Row
	if shareLink != "" {
		rows = append(rows, row.New(40).Add(
			col.New(3).Add(code.NewQr(shareLink, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Scan to share this invoice on WhatsApp.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		))
	}
	if g.footer != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(g.footer, props.Text{Size: 7, Color: colorGray, Top: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *InvoiceGenerator) money(d decimal.Decimal) string {
	return g.currency + " " + printer.Sprintf("%.2f", d.InexactFloat64())
}

// pdfCurrency: las fuentes base del PDF no traen el glifo de la rupia.
func pdfCurrency(symbol string) string {
	switch symbol {
	case "", "₹":
		return "Rs."
	default:
		return symbol
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

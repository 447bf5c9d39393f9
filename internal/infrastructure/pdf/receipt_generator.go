// Package pdf genera el comprobante de un pedido en formato de rollo térmico (80 mm).
//
//	┌──────────────────────────┐
//	│  WhiteSlip  N° pedido     │
//	│  Día hábil / hora         │
//	│  ───────────────────────  │
//	│  Cant | Producto | Subt.  │
//	│  ───────────────────────  │
//	│  TOTAL                    │
//	│  QR (order_id)            │
//	└──────────────────────────┘
package pdf

import (
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
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/whiteslip-api/internal/application/ordering"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
)

var _ ordering.ReceiptRenderer = (*ReceiptGenerator)(nil)

// Dimensiones del rollo en mm. El alto crece con la cantidad de líneas.
const (
	receiptWidth      = 80
	receiptBaseHeight = 110
	receiptLineHeight = 6
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptGenerator implementa ordering.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct {
	title string
}

// NewReceiptGenerator construye el generador; title encabeza el comprobante.
func NewReceiptGenerator(title string) *ReceiptGenerator {
	if title == "" {
		title = "WhiteSlip"
	}
	return &ReceiptGenerator{title: title}
}

// RenderReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderReceipt(order *entity.Order) ([]byte, error) {
	height := float64(receiptBaseHeight + receiptLineHeight*len(order.Items))
	cfg := config.NewBuilder().
		WithDimensions(receiptWidth, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Pedido "+order.OrderID, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.3}))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(order.Items)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.3}))
	m.AddRows(totalRow(order))
	m.AddRows(qrRow(order.OrderID))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center}),
			text.New("Pedido N° "+order.OrderID, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 6}),
			text.New(fmt.Sprintf("Día %s  ·  %s",
				order.BusinessDay.Format("02/01/2006"),
				order.CreatedAt.Format("15:04"),
			), props.Text{Size: 7, Align: align.Center, Top: 12, Color: colorGray}),
		),
	)
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a}))
	}
	return row.New(5).Add(
		h("Cant.", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Subtotal", 4, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(receiptLineHeight).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Qty), props.Text{Size: 7})),
			col.New(6).Add(text.New(it.Name, props.Text{Size: 7})),
			col.New(4).Add(text.New("$"+it.Subtotal.StringFixed(2), props.Text{Size: 7, Align: align.Right})),
		))
	}
	return rows
}

func totalRow(order *entity.Order) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10})),
		col.New(6).Add(text.New("$"+order.Total.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right})),
	)
}

// qrRow codifica el order_id para ubicar el pedido al escanear el comprobante.
func qrRow(orderID string) core.Row {
	return row.New(30).Add(
		col.New(3),
		col.New(6).Add(code.NewQr(orderID, props.Rect{Percent: 90, Center: true})),
		col.New(3),
	)
}

// Package pdf genera el remito de despacho de un pedido (packing slip) con Maroto v2.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  DropForge            │  ORD-… + fecha       │
//	│  ────────────────────────────────────────── │
//	│  ENVIAR A: nombre / teléfono / dirección     │
//	│  ────────────────────────────────────────── │
//	│  Cant | Producto | P.Unit | Subtotal         │
//	│  ────────────────────────────────────────── │
//	│  TOTAL A COBRAR (según método de pago)       │
//	│  QR con el local_order_id                    │
//	└──────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/dropforge-api/internal/application/order"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

var _ order.SlipGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa order.SlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct {
	company string
}

// NewMarotoSlipGenerator construye el generador. company aparece en el encabezado.
func NewMarotoSlipGenerator(company string) *MarotoSlipGenerator {
	return &MarotoSlipGenerator{company: nonEmpty(company, "DropForge")}
}

// GenerateSlip genera el PDF del remito y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateSlip(o *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Packing slip "+o.LocalOrderID, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shipToRow(o.CustomerInfo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(o.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(o))
	m.AddRows(line.NewRow(3))
	m.AddRows(qrRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar remito: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoSlipGenerator) headerRow(o *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("PACKING SLIP", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(o.LocalOrderID, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
			text.New(o.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
			text.New("Estado: "+o.Status, props.Text{Size: 8, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func shipToRow(c entity.CustomerInfo) core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			text.New("ENVIAR A", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Tel: "+c.Phone, props.Text{Size: 9, Top: 11}),
			text.New(c.Address+", "+c.City, props.Text{Size: 9, Top: 16}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 6, align.Left),
		h("P.Unit", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(it.ProductTitle, it.ProductID), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(money(it.PriceAtPurchase.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(money(it.Subtotal().StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

// totalRow muestra el monto a cobrar; en contra entrega es lo que cobra el courier.
func totalRow(o *entity.Order) core.Row {
	label := "TOTAL"
	if o.PaymentMethod == order.DefaultPaymentMethod {
		label = "COBRAR CONTRA ENTREGA"
	}
	return row.New(10).Add(
		col.New(8).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2})),
		col.New(4).Add(text.New(money(o.Total().StringFixed(0)), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2})),
	)
}

func qrRow(o *entity.Order) core.Row {
	return row.New(35).Add(
		col.New(4).Add(code.NewQr(o.LocalOrderID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Escanear para identificar el pedido.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Pago: "+o.PaymentMethod, props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money antepone la moneda y agrega separadores de miles a un entero en string.
// Ej: "25000" → "Tk 25,000"
func money(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	n := len(s)
	buf := make([]byte, 0, n+n/3+1)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	if neg {
		return "Tk -" + string(buf)
	}
	return "Tk " + string(buf)
}

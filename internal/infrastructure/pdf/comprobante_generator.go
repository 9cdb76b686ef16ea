// Package pdf genera el comprobante contable impreso de un asiento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Comprobante │ N° asiento + Fecha          │
//	│  FACTURA: Proveedor / Tercero / Descripción / Total          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cuenta | Nombre | Tercero | Débito | Crédito         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Débitos / Créditos / Diferencia                    │
//	│  NOTAS: advertencias del motor                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/application/ports"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ComprobanteGenerator = (*ComprobanteGenerator)(nil)

// ComprobanteGenerator implementa ports.ComprobanteGenerator usando Maroto v2.
type ComprobanteGenerator struct {
	company string
}

// NewComprobanteGenerator construye el generador con la razón social que encabeza el documento.
func NewComprobanteGenerator(company string) *ComprobanteGenerator {
	return &ComprobanteGenerator{company: company}
}

// GenerateComprobante genera el PDF y devuelve sus bytes.
func (g *ComprobanteGenerator) GenerateComprobante(_ context.Context, header ports.ComprobanteHeader, asiento *entity.Asiento) ([]byte, error) {
	if asiento == nil {
		return nil, fmt.Errorf("pdf: asiento nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante contable", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, header, asiento.ID))
	m.AddRows(facturaRow(header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(asiento.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(asiento))

	if len(asiento.Warnings) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRows(asiento.Warnings)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, header ports.ComprobanteHeader, id string) core.Row {
	fecha := ""
	if !header.Fecha.IsZero() {
		fecha = header.Fecha.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Contabilidad"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("COMPROBANTE CONTABLE DE COMPRA", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(id), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+nonEmpty(fecha, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func facturaRow(header ports.ComprobanteHeader) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("FACTURA DE PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tercero: %s   |   Total: $%s",
				nonEmpty(header.Proveedor, "—"),
				nonEmpty(header.Tercero, "—"),
				formatMoney(header.TotalFactura),
			), props.Text{Size: 8, Top: 6}),
			text.New(nonEmpty(header.Descripcion, "—"), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cuenta", 2, align.Left),
		h("Nombre", 4, align.Left),
		h("Tercero", 2, align.Left),
		h("Débito", 2, align.Right),
		h("Crédito", 2, align.Right),
	)
}

// tableLineRows una fila por línea del asiento; los ceros se dejan en blanco.
func tableLineRows(lines []entity.LedgerLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(l.Account, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.ThirdParty, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(amountCell(l.Debit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(amountCell(l.Credit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalsRow(asiento *entity.Asiento) core.Row {
	debit, credit := asiento.Totals()
	diff := debit.Sub(credit).Round(2)

	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	diffColor := colorPrimary
	if !diff.IsZero() {
		diffColor = colorAlert
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total débitos:"),
			label("Total créditos:"),
			label("Diferencia:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(debit), nil),
			value("$"+formatMoney(credit), nil),
			value("$"+formatMoney(diff), diffColor),
		),
	)
}

func notesRows(warnings []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("ADVERTENCIAS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
		}))),
	}
	for _, w := range warnings {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+w, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func amountCell(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return formatMoney(d)
}

// formatMoney formato colombiano: puntos de miles y coma decimal.
// Ej: 5850000 → "5.850.000,00", -12.5 → "-12,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}

// Package pdf genera el reporte analítico del negocio en PDF con Maroto v2.
//
// Layout A4:
//
//	HEADER: negocio + período | fecha de generación
//	RESUMEN: ingresos, gastos, retiros, utilidad neta
//	GASTOS POR CATEGORÍA: categoría | monto | %
//	TOP PRODUCTOS: producto | unidades | ingresos | utilidad | margen
package pdf

import (
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
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/ports"
)

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoReportRenderer implementa ports.ReportRenderer.
type MarotoReportRenderer struct {
	printer *message.Printer
}

// NewMarotoReportRenderer construye el renderer; los montos se formatean en inglés (1,234.50).
func NewMarotoReportRenderer() *MarotoReportRenderer {
	return &MarotoReportRenderer{printer: message.NewPrinter(language.English)}
}

// RenderAnalytics genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderAnalytics(r dto.AnalyticsReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte analítico", true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)
	money := g.moneyFormatter(r.Currency)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionTitle("RESUMEN"))
	m.AddRows(summaryRows(r.Summary, money)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("GASTOS POR CATEGORÍA"))
	if len(r.Expenses) == 0 {
		m.AddRows(emptyRow("Sin gastos en el período."))
	} else {
		m.AddRows(tableHeader([]string{"Categoría", "Monto", "%"}, []int{6, 4, 2}))
		for _, e := range r.Expenses {
			m.AddRows(tableRow([]string{
				e.Category, money(e.Amount), e.Percentage.StringFixed(2) + "%",
			}, []int{6, 4, 2}))
		}
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	if len(r.TopProducts) == 0 {
		m.AddRows(emptyRow("Sin ventas de productos en el período."))
	} else {
		widths := []int{4, 2, 2, 2, 2}
		m.AddRows(tableHeader([]string{"Producto", "Unidades", "Ingresos", "Utilidad", "Margen"}, widths))
		for _, p := range r.TopProducts {
			m.AddRows(tableRow([]string{
				nonEmpty(p.ProductName, p.ProductID),
				fmt.Sprintf("%d", p.UnitsSold),
				money(p.Revenue),
				money(p.Profit),
				p.ProfitMargin.StringFixed(2) + "%",
			}, widths))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// moneyFormatter antepone el símbolo ISO de la moneda; códigos desconocidos se muestran tal cual.
func (g *MarotoReportRenderer) moneyFormatter(code string) func(decimal.Decimal) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return func(d decimal.Decimal) string {
			return strings.TrimSpace(code + " " + g.printer.Sprintf("%.2f", d.InexactFloat64()))
		}
	}
	sym := g.printer.Sprint(currency.Symbol(unit))
	return func(d decimal.Decimal) string {
		return sym + " " + g.printer.Sprintf("%.2f", d.InexactFloat64())
	}
}

func headerRow(r dto.AnalyticsReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+periodLabel(r), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE ANALÍTICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func periodLabel(r dto.AnalyticsReport) string {
	from, to := "inicio", "hoy"
	if r.From != nil {
		from = r.From.UTC().Format("2006-01-02")
	}
	if r.To != nil {
		to = r.To.UTC().Format("2006-01-02")
	}
	return from + " a " + to
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(s, props.Text{
		Size: 8, Color: colorGray, Top: 1,
	})))
}

func summaryRows(s dto.SummaryDTO, money func(decimal.Decimal) string) []core.Row {
	kv := func(label, value string, c *props.Color) core.Row {
		return row.New(6).Add(
			col.New(6).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
			col.New(6).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Top: 1, Color: c})),
		)
	}
	net := colorPrimary
	if s.NetProfit.IsNegative() {
		net = colorDanger
	}
	return []core.Row{
		kv("Ingresos", money(s.TotalIncome), nil),
		kv("Gastos", money(s.TotalExpenses), nil),
		kv("Retiros", money(s.TotalWithdrawals), nil),
		kv("Utilidad neta", money(s.NetProfit), net),
		kv("Transacciones", fmt.Sprintf("%d", s.TransactionCount), nil),
	}
}

func tableHeader(labels []string, widths []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(widths[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(cols...)
}

func tableRow(values []string, widths []int) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(widths[i]).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

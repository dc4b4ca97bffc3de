// Package pdf implementa el reporte de estoque en PDF usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte        │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos / Movimientos / Estoque total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTOS: Nombre | SKU | Cantidad                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMIENTOS: Fecha | Producto | Tipo | Qtd | Final | Costos │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/export"
)

var _ export.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorEntrada = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorSaida   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa export.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title encabeza cada reporte.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Controle de Estoque"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, data export.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, data.GeneratedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("PRODUTOS"))
	m.AddRows(productHeaderRow())
	m.AddRows(productRows(data.Products)...)
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitleRow("MOVIMENTAÇÕES"))
	m.AddRows(movementHeaderRow())
	m.AddRows(movementRows(data.Movements)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, generatedAt string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+generatedAt, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s dto.Summary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Produtos", strconv.Itoa(s.ProductCount)),
		cell("Movimentações", strconv.Itoa(s.MovementCount)),
		cell("Estoque total (un)", strconv.FormatInt(s.TotalQty, 10)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func productHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Produto", 6, align.Left),
		headerCell("SKU", 3, align.Left),
		headerCell("Qtd", 3, align.Right),
	)
}

func productRows(products []dto.ProductRow) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Left: 1})),
			col.New(3).Add(text.New(p.SKU, props.Text{Size: 8, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(strconv.FormatInt(p.Qty, 10), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func movementHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Data", 2, align.Left),
		headerCell("Produto", 2, align.Left),
		headerCell("Tipo", 1, align.Center),
		headerCell("Qtd", 1, align.Right),
		headerCell("Final", 1, align.Right),
		headerCell("Custo Unit.", 1, align.Right),
		headerCell("Custo Total", 2, align.Right),
		headerCell("Descrição", 2, align.Left),
	)
}

func movementRows(moves []dto.MovementRow) []core.Row {
	rows := make([]core.Row, 0, len(moves))
	for _, mv := range moves {
		typeColor := colorSaida
		if mv.RowClass == "row-entrada" {
			typeColor = colorEntrada
		}
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(mv.DatetimeLabel, props.Text{Size: 7, Left: 1})),
			col.New(2).Add(text.New(mv.Product, props.Text{Size: 7, Left: 1})),
			col.New(1).Add(text.New(mv.Type, props.Text{Size: 7, Align: align.Center, Color: typeColor})),
			col.New(1).Add(text.New(strconv.FormatInt(mv.Qty, 10), props.Text{Size: 7, Align: align.Right, Right: 1})),
			col.New(1).Add(text.New(strconv.FormatInt(mv.FinalQty, 10), props.Text{Size: 7, Align: align.Right, Right: 1})),
			col.New(1).Add(text.New(mv.UnitCostLabel, props.Text{Size: 7, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(mv.TotalLabel, props.Text{Size: 7, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(mv.Description, props.Text{Size: 7, Left: 1, Color: colorGray})),
		))
	}
	return rows
}

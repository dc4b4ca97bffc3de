// Package projection deriva filas y agregados de presentación a partir del estado del
// Ledger Store. Es de solo lectura: nunca muta las colecciones recibidas.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

const datetimeLayout = "02/01/2006 15:04:05"

// IndexedMovement movimiento junto con su posición en la secuencia completa.
type IndexedMovement struct {
	Index    int
	Movement entity.Movement
}

// FilterMovements devuelve los movimientos cuyo producto o descripción contienen f,
// sin distinguir mayúsculas (case folding Unicode). f vacío devuelve todos.
func FilterMovements(moves []entity.Movement, f string) []IndexedMovement {
	fold := cases.Fold()
	needle := fold.String(f)
	out := make([]IndexedMovement, 0, len(moves))
	for i, m := range moves {
		if needle == "" ||
			strings.Contains(fold.String(m.Product), needle) ||
			strings.Contains(fold.String(m.Description), needle) {
			out = append(out, IndexedMovement{Index: i, Movement: m})
		}
	}
	return out
}

// Summarize calcula total de productos, total de movimientos y suma de cantidades.
func Summarize(products []entity.Product, moves []entity.Movement) dto.Summary {
	var total int64
	for _, p := range products {
		total += p.Qty
	}
	return dto.Summary{
		ProductCount:  len(products),
		MovementCount: len(moves),
		TotalQty:      total,
	}
}

// Formatter arma las etiquetas de presentación (fecha local y montos en R$ con formato pt-BR).
type Formatter struct {
	loc     *time.Location
	printer *message.Printer
}

// NewFormatter construye el formatter; loc nil usa time.Local.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc, printer: message.NewPrinter(language.BrazilianPortuguese)}
}

// Money formatea un monto como "R$ 1.234,50".
func (f *Formatter) Money(d decimal.Decimal) string {
	return "R$ " + f.printer.Sprintf("%.2f", d.InexactFloat64())
}

// Datetime formatea la fecha en la zona del formatter.
func (f *Formatter) Datetime(t time.Time) string {
	return t.In(f.loc).Format(datetimeLayout)
}

// MovementRows convierte movimientos filtrados en filas de la tabla.
func (f *Formatter) MovementRows(moves []IndexedMovement) []dto.MovementRow {
	rows := make([]dto.MovementRow, 0, len(moves))
	for _, im := range moves {
		m := im.Movement
		rows = append(rows, dto.MovementRow{
			Index:         im.Index,
			Datetime:      m.Datetime,
			DatetimeLabel: f.Datetime(m.Datetime),
			Product:       m.Product,
			Entity:        m.Entity,
			Type:          string(m.Type),
			Qty:           m.Qty,
			FinalQty:      m.FinalQty,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			UnitCostLabel: f.Money(m.UnitCost),
			TotalLabel:    f.Money(m.TotalCost),
			Description:   m.Description,
			RowClass:      rowClass(m.Type),
		})
	}
	return rows
}

// ProductRows convierte la lista de productos en filas (SKU "-" cuando está vacío).
func (f *Formatter) ProductRows(products []entity.Product) []dto.ProductRow {
	rows := make([]dto.ProductRow, 0, len(products))
	for i, p := range products {
		sku := p.SKU
		if sku == "" {
			sku = "-"
		}
		rows = append(rows, dto.ProductRow{
			Index:    i,
			Name:     p.Name,
			SKU:      sku,
			Qty:      p.Qty,
			UnitCost: p.UnitCost,
			Label:    fmt.Sprintf("%s — %d un", p.Name, p.Qty),
		})
	}
	return rows
}

func rowClass(t entity.MovementType) string {
	if t == entity.MovementTypeEntrada {
		return "row-entrada"
	}
	return "row-saida"
}

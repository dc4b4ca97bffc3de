// Package export genera las exportaciones del estoque: CSV de movimientos y reporte PDF.
package export

import (
	"strconv"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// CSVFileName nombre sugerido para la descarga.
const CSVFileName = "estoque.csv"

// isoLayout fecha ISO-8601 en UTC con milisegundos.
const isoLayout = "2006-01-02T15:04:05.000Z"

// CSVHeader columnas del CSV, en orden.
var CSVHeader = []string{"Data", "Produto", "Tipo", "Qtd", "Final", "CustoUnit", "CustoTotal", "Descrição"}

// BuildCSV arma el CSV de movimientos: cabecera más una fila por movimiento en el orden de la
// secuencia, campos unidos por coma sin comillas ni escape y filas unidas por "\n".
// Una coma dentro de producto o descripción desplaza las columnas (limitación aceptada).
func BuildCSV(moves []entity.Movement) string {
	lines := make([]string, 0, len(moves)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for _, m := range moves {
		lines = append(lines, strings.Join([]string{
			m.Datetime.UTC().Format(isoLayout),
			m.Product,
			string(m.Type),
			strconv.FormatInt(m.Qty, 10),
			strconv.FormatInt(m.FinalQty, 10),
			m.UnitCost.String(),
			m.TotalCost.String(),
			m.Description,
		}, ","))
	}
	return strings.Join(lines, "\n")
}

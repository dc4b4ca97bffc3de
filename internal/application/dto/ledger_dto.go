package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. Qty y UnitCost aceptan número o string.
type CreateProductRequest struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Qty      any    `json:"qty"`
	UnitCost any    `json:"unitCost"`
}

// UpdateProductRequest body para PUT /api/products/{index} (solo nombre y cantidad).
type UpdateProductRequest struct {
	Name string `json:"name"`
	Qty  any    `json:"qty"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	Product     string `json:"product"`
	Type        string `json:"type"` // "Entrada" | "Saída"
	Qty         any    `json:"qty"`
	UnitCost    any    `json:"unitCost"`
	Description string `json:"description"`
}

// ProductRow fila de la lista de productos.
type ProductRow struct {
	Index    int             `json:"index"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Qty      int64           `json:"qty"`
	UnitCost decimal.Decimal `json:"unitCost"`
	Label    string          `json:"label"` // "Café — 12 un"
}

// MovementRow fila de la tabla de movimientos. Index es la posición en la secuencia completa,
// no en la lista filtrada.
type MovementRow struct {
	Index         int             `json:"index"`
	Datetime      time.Time       `json:"datetime"`
	DatetimeLabel string          `json:"datetimeLabel"`
	Product       string          `json:"product"`
	Entity        string          `json:"entity"`
	Type          string          `json:"type"`
	Qty           int64           `json:"qty"`
	FinalQty      int64           `json:"finalQty"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	UnitCostLabel string          `json:"unitCostLabel"`
	TotalLabel    string          `json:"totalCostLabel"`
	Description   string          `json:"description"`
	RowClass      string          `json:"rowClass"` // row-entrada | row-saida
}

// Summary agregados del tablero.
type Summary struct {
	ProductCount  int   `json:"productCount"`
	MovementCount int   `json:"movementCount"`
	TotalQty      int64 `json:"totalQty"`
}

// ProductListResponse respuesta de GET /api/products.
type ProductListResponse struct {
	Items   []ProductRow `json:"items"`
	Summary Summary      `json:"summary"`
}

// MovementListResponse respuesta de GET /api/movements.
type MovementListResponse struct {
	Items   []MovementRow `json:"items"`
	Filter  string        `json:"filter"`
	Total   int           `json:"total"` // movimientos en la secuencia completa
	Summary Summary       `json:"summary"`
}

// Los montos de las filas se emiten como números JSON.

func (r ProductRow) MarshalJSON() ([]byte, error) {
	type row ProductRow
	return json.Marshal(struct {
		row
		UnitCost json.Number `json:"unitCost"`
	}{row(r), json.Number(r.UnitCost.String())})
}

func (r MovementRow) MarshalJSON() ([]byte, error) {
	type row MovementRow
	return json.Marshal(struct {
		row
		UnitCost  json.Number `json:"unitCost"`
		TotalCost json.Number `json:"totalCost"`
	}{row(r), json.Number(r.UnitCost.String()), json.Number(r.TotalCost.String())})
}

package entity

import "github.com/shopspring/decimal"

// Product representa un producto del estoque. Se identifica por Name: los movimientos
// lo referencian por nombre y no hay restricción de unicidad (gana el primero).
type Product struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Qty      int64           `json:"qty"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

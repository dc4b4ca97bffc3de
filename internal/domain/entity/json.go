package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	maxQty = decimal.NewFromInt(math.MaxInt64)
	minQty = decimal.NewFromInt(math.MinInt64)
)

// QtyFromDecimal trunca hacia cero y satura en los límites de int64.
func QtyFromDecimal(d decimal.Decimal) int64 {
	switch {
	case d.GreaterThan(maxQty):
		return math.MaxInt64
	case d.LessThan(minQty):
		return math.MinInt64
	}
	return d.IntPart()
}

// Los montos se escriben como números JSON, no como strings, y las cantidades se leen
// aunque vengan fraccionarias o nulas.

type productJSON struct {
	Name     string      `json:"name"`
	SKU      string      `json:"sku"`
	Qty      int64       `json:"qty"`
	UnitCost json.Number `json:"unitCost"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		Name:     p.Name,
		SKU:      p.SKU,
		Qty:      p.Qty,
		UnitCost: json.Number(p.UnitCost.String()),
	})
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var aux struct {
		Name     string          `json:"name"`
		SKU      string          `json:"sku"`
		Qty      decimal.Decimal `json:"qty"`
		UnitCost decimal.Decimal `json:"unitCost"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Product{Name: aux.Name, SKU: aux.SKU, Qty: QtyFromDecimal(aux.Qty), UnitCost: aux.UnitCost}
	return nil
}

type movementJSON struct {
	Datetime    time.Time    `json:"datetime"`
	Product     string       `json:"product"`
	Entity      string       `json:"entity"`
	Type        MovementType `json:"type"`
	Qty         int64        `json:"qty"`
	FinalQty    int64        `json:"finalQty"`
	UnitCost    json.Number  `json:"unitCost"`
	TotalCost   json.Number  `json:"totalCost"`
	Description string       `json:"description"`
}

func (m Movement) MarshalJSON() ([]byte, error) {
	return json.Marshal(movementJSON{
		Datetime:    m.Datetime,
		Product:     m.Product,
		Entity:      m.Entity,
		Type:        m.Type,
		Qty:         m.Qty,
		FinalQty:    m.FinalQty,
		UnitCost:    json.Number(m.UnitCost.String()),
		TotalCost:   json.Number(m.TotalCost.String()),
		Description: m.Description,
	})
}

func (m *Movement) UnmarshalJSON(b []byte) error {
	var aux struct {
		Datetime    time.Time       `json:"datetime"`
		Product     string          `json:"product"`
		Entity      string          `json:"entity"`
		Type        MovementType    `json:"type"`
		Qty         decimal.Decimal `json:"qty"`
		FinalQty    decimal.Decimal `json:"finalQty"`
		UnitCost    decimal.Decimal `json:"unitCost"`
		TotalCost   decimal.Decimal `json:"totalCost"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*m = Movement{
		Datetime:    aux.Datetime,
		Product:     aux.Product,
		Entity:      aux.Entity,
		Type:        aux.Type,
		Qty:         QtyFromDecimal(aux.Qty),
		FinalQty:    QtyFromDecimal(aux.FinalQty),
		UnitCost:    aux.UnitCost,
		TotalCost:   aux.TotalCost,
		Description: aux.Description,
	}
	return nil
}

package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ParseQty convierte un valor recibido (número JSON, string o nil) a cantidad entera en
// base 10, truncando la parte fraccionaria. Valores no numéricos se convierten en 0.
func ParseQty(v any) int64 {
	return entity.QtyFromDecimal(ParseMoney(v))
}

// ParseMoney convierte un valor recibido a decimal; valores no numéricos se convierten en 0.
func ParseMoney(v any) decimal.Decimal {
	if _, ok := v.(bool); ok {
		return decimal.Zero
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

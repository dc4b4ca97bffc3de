package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// FinalQty aplica un movimiento sobre la cantidad actual (servicio de dominio).
// Entrada suma y Saída resta; no hay piso de estoque, la cantidad puede quedar negativa.
// Si el resultado no cabe en int64 devuelve domain.ErrInvalidInput.
func FinalQty(current int64, t entity.MovementType, qty int64) (int64, error) {
	if t == entity.MovementTypeEntrada {
		return add(current, qty)
	}
	return add(current, -qty)
}

// ReverseQty deshace el efecto de un movimiento: ReverseQty(FinalQty(c, t, q), t, q) == c.
func ReverseQty(current int64, t entity.MovementType, qty int64) (int64, error) {
	if t == entity.MovementTypeEntrada {
		return add(current, -qty)
	}
	return add(current, qty)
}

func add(a, b int64) (int64, error) {
	// -MinInt64 no es representable.
	if b == math.MinInt64 || (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("cantidad %d%+d fuera de rango: %w", a, b, domain.ErrInvalidInput)
	}
	return a + b, nil
}

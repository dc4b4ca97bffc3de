package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// MovementType tipo de movimiento de estoque. Los valores se persisten tal cual.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeEntrada MovementType = "Entrada" // entrada
	MovementTypeSaida   MovementType = "Saída"   // salida
)

// ParseMovementType normaliza el tipo recibido (sin distinguir mayúsculas; acepta "Saida" sin tilde).
func ParseMovementType(s string) (MovementType, bool) {
	switch cases.Fold().String(s) {
	case cases.Fold().String(string(MovementTypeEntrada)):
		return MovementTypeEntrada, true
	case cases.Fold().String(string(MovementTypeSaida)), "saida":
		return MovementTypeSaida, true
	}
	return "", false
}

// Movement representa una entrada o salida de estoque. Su identidad es la posición en la
// secuencia de movimientos (más reciente primero).
type Movement struct {
	Datetime    time.Time       `json:"datetime"`
	Product     string          `json:"product"`
	Entity      string          `json:"entity"` // reservado, siempre vacío
	Type        MovementType    `json:"type"`
	Qty         int64           `json:"qty"`
	FinalQty    int64           `json:"finalQty"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	Description string          `json:"description"`
}

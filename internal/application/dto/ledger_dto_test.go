package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

func TestProductRow_MontoComoNumero(t *testing.T) {
	raw, err := json.Marshal(dto.ProductRow{Index: 1, Name: "Café", Qty: 4, UnitCost: decimal.RequireFromString("3.25"), Label: "Café — 4 un"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":1,"name":"Café","sku":"","qty":4,"unitCost":3.25,"label":"Café — 4 un"}`, string(raw))
}

func TestMovementRow_MontosComoNumeros(t *testing.T) {
	row := dto.MovementRow{
		Datetime: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC),
		Product:  "Café", Type: "Saída", Qty: 3, FinalQty: 7,
		UnitCost: decimal.RequireFromString("2.5"), TotalCost: decimal.RequireFromString("7.5"),
		RowClass: "row-saida",
	}
	raw, err := json.Marshal(row)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 2.5, got["unitCost"])
	assert.Equal(t, 7.5, got["totalCost"])
	assert.Equal(t, "row-saida", got["rowClass"])

	var back dto.MovementRow
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.TotalCost.Equal(row.TotalCost))
}

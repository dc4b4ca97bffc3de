package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
)

func TestGenerateReportPDF_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("")
	data := export.ReportData{
		GeneratedAt: "10/05/2024 09:30:00",
		Summary:     dto.Summary{ProductCount: 1, MovementCount: 1, TotalQty: 12},
		Products:    []dto.ProductRow{{Index: 0, Name: "Café", SKU: "CF-1", Qty: 12}},
		Movements: []dto.MovementRow{{
			Index: 0, Datetime: time.Now(), DatetimeLabel: "10/05/2024 09:30:00",
			Product: "Café", Type: "Saída", Qty: 3, FinalQty: 12,
			UnitCostLabel: "R$ 2,50", TotalLabel: "R$ 7,50", Description: "venda", RowClass: "row-saida",
		}},
	}

	doc, err := g.GenerateReportPDF(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "debe comenzar con la firma PDF")
}

func TestGenerateReportPDF_SinDatos(t *testing.T) {
	doc, err := pdf.NewMarotoReportGenerator("Estoque").GenerateReportPDF(context.Background(), export.ReportData{})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/projection"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// PDFFileName nombre sugerido para la descarga del reporte.
const PDFFileName = "estoque.pdf"

// LedgerReader fuente de lectura del estado (implementada por ledger.Store).
type LedgerReader interface {
	Snapshot() ([]entity.Product, []entity.Movement)
}

// ReportData datos ya proyectados que recibe el generador de PDF.
type ReportData struct {
	GeneratedAt string
	Summary     dto.Summary
	Products    []dto.ProductRow
	Movements   []dto.MovementRow
}

// PDFGenerator puerto para renderizar el reporte de estoque.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, data ReportData) ([]byte, error)
}

// ReportUseCase arma las exportaciones a partir de una lectura consistente del Ledger Store.
type ReportUseCase struct {
	reader    LedgerReader
	generator PDFGenerator
	formatter *projection.Formatter
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reader LedgerReader, generator PDFGenerator, formatter *projection.Formatter) *ReportUseCase {
	return &ReportUseCase{reader: reader, generator: generator, formatter: formatter, now: time.Now}
}

// CSV exporta todos los movimientos en el orden actual.
func (uc *ReportUseCase) CSV() string {
	_, moves := uc.reader.Snapshot()
	return BuildCSV(moves)
}

// PDF genera el reporte con resumen, productos y movimientos (filtrados por f si no es vacío).
func (uc *ReportUseCase) PDF(ctx context.Context, f string) ([]byte, error) {
	products, moves := uc.reader.Snapshot()
	data := ReportData{
		GeneratedAt: uc.formatter.Datetime(uc.now()),
		Summary:     projection.Summarize(products, moves),
		Products:    uc.formatter.ProductRows(products),
		Movements:   uc.formatter.MovementRows(projection.FilterMovements(moves, f)),
	}
	doc, err := uc.generator.GenerateReportPDF(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("reporte pdf: %w", err)
	}
	return doc, nil
}

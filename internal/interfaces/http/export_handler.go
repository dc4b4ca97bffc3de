package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// ExportHandler descargas CSV y PDF.
type ExportHandler struct {
	reports *export.ReportUseCase
	log     *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(reports *export.ReportUseCase, log *logger.Logger) *ExportHandler {
	return &ExportHandler{reports: reports, log: log}
}

// CSV godoc
// @Summary      Exportar movimientos en CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "estoque.csv"
// @Router       /api/export/csv [get]
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	c.Attachment(export.CSVFileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.SendString(h.reports.CSV())
}

// PDF godoc
// @Summary      Reporte de estoque en PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        q    query  string  false  "Filtro de movimientos"
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.reports.PDF(c.UserContext(), c.Query("q"))
	if err != nil {
		h.log.Error().Err(err).Msg("generar pdf")
		return respondError(c, err)
	}
	c.Attachment(export.PDFFileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

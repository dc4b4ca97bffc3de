package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/ledger"
	"github.com/jhoicas/estoque-api/internal/application/projection"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// LedgerHandler maneja productos, movimientos y resumen.
type LedgerHandler struct {
	store *ledger.Store
	fmt   *projection.Formatter
	log   *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(store *ledger.Store, formatter *projection.Formatter, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{store: store, fmt: formatter, log: log}
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *LedgerHandler) ListProducts(c *fiber.Ctx) error {
	products, moves := h.store.Snapshot()
	return c.JSON(dto.ProductListResponse{
		Items:   h.fmt.ProductRows(products),
		Summary: projection.Summarize(products, moves),
	})
}

// CreateProduct godoc
// @Summary      Agregar producto
// @Description  qty y unitCost aceptan número o string; valores no numéricos se guardan como 0.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, sku, qty, unitCost"
// @Success      201   {object}  dto.ProductRow
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *LedgerHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	idx, p, err := h.store.AddProduct(c.UserContext(), ledger.ProductInput{
		Name:     in.Name,
		SKU:      in.SKU,
		Qty:      dto.ParseQty(in.Qty),
		UnitCost: dto.ParseMoney(in.UnitCost),
	})
	if err != nil {
		h.log.Error().Err(err).Str("product", in.Name).Msg("agregar producto")
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.productRow(idx, p))
}

// UpdateProduct godoc
// @Summary      Editar producto
// @Description  Sobrescribe nombre y cantidad. Los movimientos existentes no se renombran.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        index  path  int                        true  "Posición en la lista"
// @Param        body   body  dto.UpdateProductRequest   true  "name, qty"
// @Success      200    {object}  dto.ProductRow
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/products/{index} [put]
func (h *LedgerHandler) UpdateProduct(c *fiber.Ctx) error {
	idx, ok := indexParam(c)
	if !ok {
		return nil
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.store.EditProduct(c.UserContext(), idx, in.Name, dto.ParseQty(in.Qty))
	if err != nil {
		h.log.Warn().Err(err).Int("index", idx).Msg("editar producto")
		return respondError(c, err)
	}
	return c.JSON(h.productRow(idx, p))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Filtro opcional por producto o descripción (sin distinguir mayúsculas).
// @Description  index de cada fila es la posición en la secuencia completa.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	products, moves := h.store.Snapshot()
	q := c.Query("q")
	return c.JSON(dto.MovementListResponse{
		Items:   h.fmt.MovementRows(projection.FilterMovements(moves, q)),
		Filter:  q,
		Total:   len(moves),
		Summary: projection.Summarize(products, moves),
	})
}

// CreateMovement godoc
// @Summary      Registrar movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product, type (Entrada|Saída), qty, unitCost, description"
// @Success      201   {object}  dto.MovementRow
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *LedgerHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mt, ok := entity.ParseMovementType(in.Type)
	if !ok {
		mt = entity.MovementType(in.Type) // el store lo rechaza como VALIDATION
	}
	m, err := h.store.AddMovement(c.UserContext(), ledger.MovementInput{
		Product:     in.Product,
		Type:        mt,
		Qty:         dto.ParseQty(in.Qty),
		UnitCost:    dto.ParseMoney(in.UnitCost),
		Description: in.Description,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("product", in.Product).Str("type", in.Type).Msg("registrar movimiento")
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.movementRow(0, m))
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Revierte el efecto sobre la cantidad del producto con ese nombre y elimina el movimiento.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        index  path  int  true  "Posición en la secuencia completa"
// @Success      200    {object}  dto.MovementRow
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/movements/{index} [delete]
func (h *LedgerHandler) DeleteMovement(c *fiber.Ctx) error {
	idx, ok := indexParam(c)
	if !ok {
		return nil
	}
	m, err := h.store.DeleteMovement(c.UserContext(), idx)
	if err != nil {
		h.log.Warn().Err(err).Int("index", idx).Msg("eliminar movimiento")
		return respondError(c, err)
	}
	return c.JSON(h.movementRow(idx, m))
}

// Summary godoc
// @Summary      Resumen del estoque
// @Tags         summary
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Summary
// @Router       /api/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	products, moves := h.store.Snapshot()
	return c.JSON(projection.Summarize(products, moves))
}

func (h *LedgerHandler) productRow(idx int, p entity.Product) dto.ProductRow {
	row := h.fmt.ProductRows([]entity.Product{p})[0]
	row.Index = idx
	return row
}

func (h *LedgerHandler) movementRow(idx int, m entity.Movement) dto.MovementRow {
	return h.fmt.MovementRows([]projection.IndexedMovement{{Index: idx, Movement: m}})[0]
}

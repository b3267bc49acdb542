package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/stock"
)

// StockHandler maneja partidas de almacén y sus análisis de calidad.
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListAvailable godoc
// @Summary      Partidas disponibles en almacén
// @Description  Solo partidas con existencias, agrupadas por nomenclatura y ordenadas por fecha de producción.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListAvailable(c *fiber.Ctx) error {
	out, err := h.uc.ListAvailable()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListForProduct godoc
// @Summary      Partidas disponibles de un producto
// @Description  Selector de partida de la ficha del producto: solo partidas con existencias.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/products/{id}/batches [get]
func (h *StockHandler) ListForProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListForProduct(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Todas las partidas (incluye agotadas)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/batches [get]
func (h *StockHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// CreateBatch godoc
// @Summary      Dar de alta una partida
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Datos de la partida"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *StockHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateBatch(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdjustBatch godoc
// @Summary      Ajustar existencias de una partida
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la partida"
// @Param        body  body  dto.AdjustBatchRequest  true  "Cantidad resultante"
// @Success      200   {object}  dto.BatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [patch]
func (h *StockHandler) AdjustBatch(c *fiber.Ctx) error {
	var in dto.AdjustBatchRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.AdjustBatch(c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// DeleteBatch godoc
// @Summary      Eliminar una partida
// @Description  Elimina también el análisis de calidad asociado si existe.
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "ID de la partida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *StockHandler) DeleteBatch(c *fiber.Ctx) error {
	if err := h.uc.DeleteBatch(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertAnalysis godoc
// @Summary      Registrar o actualizar el análisis de calidad
// @Description  Actualización parcial: solo se aplican los campos presentes en el cuerpo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la partida"
// @Param        body  body  dto.UpsertAnalysisRequest  true  "Mediciones"
// @Success      200   {object}  dto.AnalysisResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/analysis [put]
func (h *StockHandler) UpsertAnalysis(c *fiber.Ctx) error {
	var in dto.UpsertAnalysisRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpsertAnalysis(c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetAnalysis godoc
// @Summary      Consultar el análisis de calidad de una partida
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la partida"
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/analysis [get]
func (h *StockHandler) GetAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.GetAnalysis(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

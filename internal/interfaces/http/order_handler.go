package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/order"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

// OrderHandler maneja pedidos: creación desde el carrito, consulta y moderación.
type OrderHandler struct {
	uc *order.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido desde el carrito
// @Description  Convierte el carrito en un pedido en moderación; las líneas con partida descuentan existencias y el carrito queda vacío.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (def. 20, máx. 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(GetUserID(c), pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un pedido
// @Description  El comprador solo ve sus propios pedidos; manager y admin cualquiera.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	role := GetRole(c)
	var (
		out *dto.OrderResponse
		err error
	)
	if role == entity.RoleManager || role == entity.RoleAdmin {
		out, err = h.uc.Get(c.Params("id"))
	} else {
		out, err = h.uc.GetForUser(c.Params("id"), GetUserID(c))
	}
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Pedidos de todos los compradores (moderación)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite (def. 20, máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/manager/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.Query("status"), pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Moderar un pedido
// @Description  Transiciones permitidas: pending_moderation→approved/cancelled, approved→completed/cancelled.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado, motivo y fecha de envío"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

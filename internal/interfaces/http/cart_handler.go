package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/cart"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
)

// CartHandler maneja el carrito del comprador autenticado.
type CartHandler struct {
	uc *cart.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// List godoc
// @Summary      Ver el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Añadir al carrito
// @Description  Mismo producto + color + partida acumula cantidad en la entrada existente.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "Producto, cantidad, color RAL y partida opcional"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Add(GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Change godoc
// @Summary      Cambiar la cantidad de una entrada
// @Description  Aplica un delta; si la cantidad resultante es cero o menos la entrada se elimina.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangeCartRequest  true  "Clave de la entrada y delta"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [patch]
func (h *CartHandler) Change(c *fiber.Ctx) error {
	var in dto.ChangeCartRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Change(GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar una entrada del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        key  query  string  true  "Clave de la entrada (producto|color|partida)"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "key es requerida"})
	}
	out, err := h.uc.Remove(GetUserID(c), key)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(GetUserID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

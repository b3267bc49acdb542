package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/document"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

// DocumentHandler descarga de documentos PDF del pedido.
type DocumentHandler struct {
	uc *document.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *document.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// requesterFor un manager o admin puede descargar documentos de cualquier
// pedido; el comprador solo de los suyos.
func requesterFor(c *fiber.Ctx) string {
	role := GetRole(c)
	if role == entity.RoleManager || role == entity.RoleAdmin {
		return ""
	}
	return GetUserID(c)
}

func sendPDF(c *fiber.Ctx, filename string, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Invoice godoc
// @Summary      Descargar factura proforma
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [get]
func (h *DocumentHandler) Invoice(c *fiber.Ctx) error {
	orderID := c.Params("id")
	pdf, err := h.uc.Invoice(orderID, requesterFor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return sendPDF(c, fmt.Sprintf("factura-%s.pdf", orderID), pdf)
}

// DeliveryNote godoc
// @Summary      Descargar albarán de entrega
// @Description  Disponible solo para pedidos aprobados o completados.
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivery-note [get]
func (h *DocumentHandler) DeliveryNote(c *fiber.Ctx) error {
	orderID := c.Params("id")
	pdf, err := h.uc.DeliveryNote(orderID, requesterFor(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return sendPDF(c, fmt.Sprintf("albaran-%s.pdf", orderID), pdf)
}

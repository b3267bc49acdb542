package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/chat"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
)

// ChatHandler maneja el chat del comprador y la bandeja de agentes.
type ChatHandler struct {
	uc *chat.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// PostMessage godoc
// @Summary      Enviar mensaje al chat
// @Description  Si el asistente está activo responde en la misma llamada; si no, el mensaje queda en cola para un agente.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostChatMessageRequest  true  "Mensaje"
// @Success      200   {object}  dto.ChatReplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat/messages [post]
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	var in dto.PostChatMessageRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.PostBuyerMessage(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial del chat propio
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Últimos N mensajes (def. 50)"
// @Success      200  {object}  dto.ChatThreadResponse
// @Router       /api/chat/messages [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.GetHistory(GetUserID(c), c.QueryInt("limit", 50))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListThreads godoc
// @Summary      Bandeja de hilos (agentes)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (def. 20, máx. 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ChatThreadListResponse
// @Router       /api/manager/chat/threads [get]
func (h *ChatHandler) ListThreads(c *fiber.Ctx) error {
	out, err := h.uc.ListThreads(pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetThread godoc
// @Summary      Historial del hilo de un comprador (agentes)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        userId  path   string  true   "ID del comprador"
// @Param        limit   query  int     false  "Últimos N mensajes (def. 50)"
// @Success      200  {object}  dto.ChatThreadResponse
// @Router       /api/manager/chat/threads/{userId} [get]
func (h *ChatHandler) GetThread(c *fiber.Ctx) error {
	out, err := h.uc.GetHistory(c.Params("userId"), c.QueryInt("limit", 50))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// PostAgentMessage godoc
// @Summary      Responder como agente
// @Description  Asigna el hilo al agente que responde y marca los mensajes del comprador como leídos.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string  true  "ID del comprador"
// @Param        body    body  dto.PostChatMessageRequest  true  "Mensaje"
// @Success      200     {object}  dto.ChatMessageResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/manager/chat/threads/{userId}/messages [post]
func (h *ChatHandler) PostAgentMessage(c *fiber.Ctx) error {
	var in dto.PostChatMessageRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.PostAgentMessage(GetUserID(c), c.Params("userId"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// SetAssistant godoc
// @Summary      Activar o desactivar el asistente en un hilo
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Param        userId  path  string  true  "ID del comprador"
// @Param        body    body  dto.SetAssistantRequest  true  "Estado del asistente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/chat/threads/{userId}/assistant [put]
func (h *ChatHandler) SetAssistant(c *fiber.Ctx) error {
	var in dto.SetAssistantRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.SetAssistantEnabled(c.Params("userId"), in.Enabled); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Assign godoc
// @Summary      Tomar un hilo
// @Description  Asigna el hilo al agente autenticado y desactiva el asistente.
// @Tags         chat
// @Security     Bearer
// @Param        userId  path  string  true  "ID del comprador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager/chat/threads/{userId}/assign [post]
func (h *ChatHandler) Assign(c *fiber.Ctx) error {
	if err := h.uc.AssignAgent(c.Params("userId"), GetUserID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkRead godoc
// @Summary      Marcar el hilo como leído
// @Tags         chat
// @Security     Bearer
// @Param        userId  path  string  true  "ID del comprador"
// @Success      204
// @Router       /api/manager/chat/threads/{userId}/read [post]
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("userId")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

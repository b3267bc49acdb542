package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// respuesta de cortesía cuando ningún modelo pudo atender la petición.
const fallbackReply = "Disculpe, el asistente no está disponible en este momento. Un gestor le responderá en breve."

// aviso estático cuando el asistente está apagado y atiende una persona.
const awaitAgentNotice = "Su mensaje ha sido recibido. Un gestor le responderá en breve."

// ChatUseCase hilo de chat del comprador con asistente automático y
// traspaso a gestor humano. Un hilo por usuario; mientras el asistente está
// activo responde el LLM, al desactivarlo los mensajes quedan pendientes
// para el gestor asignado.
type ChatUseCase struct {
	chatRepo     repository.ChatRepository
	userRepo     repository.UserRepository
	assistant    ports.AssistantService
	historyTurns int
	log          *logger.Logger
}

// NewChatUseCase construye el caso de uso de chat. assistant puede ser nil
// (sin proveedor configurado); en ese caso todo hilo nace con el asistente apagado.
func NewChatUseCase(chatRepo repository.ChatRepository, userRepo repository.UserRepository, assistant ports.AssistantService, historyTurns int, log *logger.Logger) *ChatUseCase {
	if historyTurns <= 0 {
		historyTurns = 6
	}
	return &ChatUseCase{chatRepo: chatRepo, userRepo: userRepo, assistant: assistant, historyTurns: historyTurns, log: log}
}

// PostBuyerMessage guarda el mensaje del comprador y, si el asistente está
// activo, genera y guarda la respuesta. Si el proveedor falla se responde con
// un mensaje de cortesía en nombre del asistente; el hilo sigue funcionando.
func (uc *ChatUseCase) PostBuyerMessage(ctx context.Context, userID string, in dto.PostChatMessageRequest) (*dto.ChatReplyResponse, error) {
	thread, err := uc.getOrCreateThread(userID)
	if err != nil {
		return nil, err
	}

	// el contexto se captura antes de guardar el mensaje entrante: el último
	// turno del historial no debe repetir la pregunta que va aparte.
	assistantActive := thread.AssistantEnabled && uc.assistant != nil
	var history []ports.ChatTurn
	if assistantActive {
		if history, err = uc.recentTurns(thread.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	buyerMsg := &entity.ChatMessage{
		ID:        uuid.New().String(),
		ChatID:    thread.ID,
		Role:      entity.ChatRoleBuyer,
		Text:      in.Message,
		CreatedAt: now,
	}
	if err := uc.chatRepo.CreateMessage(buyerMsg); err != nil {
		return nil, err
	}

	if !assistantActive {
		// queda pendiente para el gestor; el aviso no se persiste
		return &dto.ChatReplyResponse{Response: awaitAgentNotice, Timestamp: now}, nil
	}

	replyText, err := uc.assistant.Reply(ctx, history, in.Message)
	if err != nil {
		uc.log.Warn().Err(err).Str("chat_id", thread.ID).Msg("asistente no disponible, respuesta de cortesía")
		replyText = fallbackReply
	}

	assistantMsg := &entity.ChatMessage{
		ID:        uuid.New().String(),
		ChatID:    thread.ID,
		Role:      entity.ChatRoleAssistant,
		Text:      replyText,
		Read:      true,
		CreatedAt: time.Now(),
	}
	if err := uc.chatRepo.CreateMessage(assistantMsg); err != nil {
		return nil, err
	}
	return &dto.ChatReplyResponse{
		Response:  assistantMsg.Text,
		Timestamp: assistantMsg.CreatedAt,
		Message:   toMessageResponse(assistantMsg),
	}, nil
}

// PostAgentMessage guarda la respuesta de un gestor en el hilo del usuario y
// marca los mensajes pendientes como leídos.
func (uc *ChatUseCase) PostAgentMessage(agentID, userID string, in dto.PostChatMessageRequest) (*dto.ChatMessageResponse, error) {
	thread, err := uc.chatRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	msg := &entity.ChatMessage{
		ID:        uuid.New().String(),
		ChatID:    thread.ID,
		Role:      entity.ChatRoleAgent,
		Text:      in.Message,
		Read:      true,
		CreatedAt: time.Now(),
	}
	if err := uc.chatRepo.CreateMessage(msg); err != nil {
		return nil, err
	}
	if err := uc.chatRepo.MarkAllRead(thread.ID); err != nil {
		return nil, err
	}
	if thread.AgentID != agentID {
		thread.AgentID = agentID
		thread.UpdatedAt = time.Now()
		if err := uc.chatRepo.Update(thread); err != nil {
			return nil, err
		}
	}
	return toMessageResponse(msg), nil
}

// SetAssistantEnabled activa o desactiva el asistente en el hilo del usuario.
func (uc *ChatUseCase) SetAssistantEnabled(userID string, enabled bool) error {
	thread, err := uc.getOrCreateThread(userID)
	if err != nil {
		return err
	}
	thread.AssistantEnabled = enabled
	thread.UpdatedAt = time.Now()
	return uc.chatRepo.Update(thread)
}

// AssignAgent asigna un gestor al hilo y apaga el asistente: a partir de ahí
// responde una persona.
func (uc *ChatUseCase) AssignAgent(userID, agentID string) error {
	agent, err := uc.userRepo.GetByID(agentID)
	if err != nil {
		return err
	}
	if agent.Role != entity.RoleManager && agent.Role != entity.RoleAdmin {
		return domain.ErrInvalidInput
	}
	thread, err := uc.getOrCreateThread(userID)
	if err != nil {
		return err
	}
	thread.AgentID = agentID
	thread.AssistantEnabled = false
	thread.UpdatedAt = time.Now()
	return uc.chatRepo.Update(thread)
}

// GetHistory devuelve el hilo del usuario con sus últimos mensajes.
func (uc *ChatUseCase) GetHistory(userID string, limit int) (*dto.ChatThreadResponse, error) {
	thread, err := uc.chatRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// hilo aún no iniciado: historial vacío con asistente activo
			return &dto.ChatThreadResponse{UserID: userID, AssistantEnabled: uc.assistant != nil, Messages: []dto.ChatMessageResponse{}}, nil
		}
		return nil, err
	}
	return uc.toThreadResponse(thread, limit)
}

// ListThreads bandeja de hilos para gestores, con contador de no leídos.
func (uc *ChatUseCase) ListThreads(page dto.PageRequest) (*dto.ChatThreadListResponse, error) {
	threads, err := uc.chatRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ChatThreadListResponse{Items: make([]dto.ChatThreadResponse, 0, len(threads))}
	for _, th := range threads {
		item, err := uc.toThreadResponse(th, 0)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, *item)
	}
	return resp, nil
}

// MarkRead marca como leídos los mensajes pendientes del hilo del usuario.
func (uc *ChatUseCase) MarkRead(userID string) error {
	thread, err := uc.chatRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	return uc.chatRepo.MarkAllRead(thread.ID)
}

func (uc *ChatUseCase) getOrCreateThread(userID string) (*entity.Chat, error) {
	thread, err := uc.chatRepo.GetByUser(userID)
	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now()
	thread = &entity.Chat{
		ID:               uuid.New().String(),
		UserID:           userID,
		AssistantEnabled: uc.assistant != nil,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.chatRepo.Create(thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// recentTurns devuelve los últimos turnos del hilo en el formato del proveedor.
func (uc *ChatUseCase) recentTurns(chatID string) ([]ports.ChatTurn, error) {
	msgs, err := uc.chatRepo.ListMessages(chatID, uc.historyTurns)
	if err != nil {
		return nil, err
	}
	turns := make([]ports.ChatTurn, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role != entity.ChatRoleBuyer {
			role = "assistant"
		}
		turns = append(turns, ports.ChatTurn{Role: role, Text: m.Text})
	}
	return turns, nil
}

func (uc *ChatUseCase) toThreadResponse(th *entity.Chat, msgLimit int) (*dto.ChatThreadResponse, error) {
	unread, err := uc.chatRepo.CountUnread(th.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ChatThreadResponse{
		ID:               th.ID,
		UserID:           th.UserID,
		AssistantEnabled: th.AssistantEnabled,
		AgentID:          th.AgentID,
		Unread:           unread,
		UpdatedAt:        th.UpdatedAt,
	}
	if user, err := uc.userRepo.GetByID(th.UserID); err == nil {
		resp.UserName = user.FullName
	}
	if msgLimit > 0 {
		msgs, err := uc.chatRepo.ListMessages(th.ID, msgLimit)
		if err != nil {
			return nil, err
		}
		resp.Messages = make([]dto.ChatMessageResponse, 0, len(msgs))
		for _, m := range msgs {
			resp.Messages = append(resp.Messages, *toMessageResponse(m))
		}
	}
	return resp, nil
}

func toMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Text:      m.Text,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

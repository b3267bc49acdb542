package dto

import "time"

// PostChatMessageRequest entrada del widget de chat del comprador.
type PostChatMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// ChatMessageResponse mensaje individual del hilo.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // buyer | assistant | agent
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatReplyResponse respuesta inmediata al mensaje del comprador. Response
// lleva siempre el texto a mostrar; Message es el mensaje persistido del
// asistente y es nil cuando el asistente está desactivado (atiende un gestor).
type ChatReplyResponse struct {
	Response  string               `json:"response"`
	Timestamp time.Time            `json:"timestamp"`
	Message   *ChatMessageResponse `json:"message,omitempty"`
}

// ChatThreadResponse hilo de chat con su historial.
type ChatThreadResponse struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user_id"`
	UserName         string                `json:"user_name,omitempty"`
	AssistantEnabled bool                  `json:"assistant_enabled"`
	AgentID          string                `json:"agent_id,omitempty"`
	Unread           int                   `json:"unread"`
	Messages         []ChatMessageResponse `json:"messages,omitempty"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ChatThreadListResponse bandeja de hilos para los operadores.
type ChatThreadListResponse struct {
	Items []ChatThreadResponse `json:"items"`
}

// SetAssistantRequest entrada para activar/desactivar el asistente en un hilo.
type SetAssistantRequest struct {
	Enabled bool `json:"enabled"`
}

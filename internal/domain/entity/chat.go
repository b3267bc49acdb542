package entity

import "time"

// Roles del remitente en un mensaje de chat.
const (
	ChatRoleBuyer     = "buyer"
	ChatRoleAssistant = "assistant"
	ChatRoleAgent     = "agent"
)

// Chat es el hilo de conversación de un comprador: uno por usuario.
// AssistantEnabled decide si los mensajes nuevos se enrutan al asistente
// automático o quedan pendientes para un gestor humano.
type Chat struct {
	ID               string
	UserID           string
	AssistantEnabled bool
	AgentID          string // gestor asignado; vacío = sin asignar
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ChatMessage es un mensaje del hilo, etiquetado con el rol del remitente.
// Read marca si un gestor ya vio el mensaje (solo relevante para role=buyer).
type ChatMessage struct {
	ID        string
	ChatID    string
	Role      string
	Text      string
	Read      bool
	CreatedAt time.Time
}

package ports

import (
	"context"
	"errors"
)

// ErrAssistantUnavailable indica que ningún modelo pudo atender la petición
// (saldo agotado, rate limit en todos los modelos o caída del proveedor).
var ErrAssistantUnavailable = errors.New("assistant unavailable")

// ChatTurn un turno previo de la conversación que se envía como contexto.
type ChatTurn struct {
	Role string // "user" o "assistant"
	Text string
}

// AssistantService abstrae el proveedor LLM que responde en el chat.
type AssistantService interface {
	// Reply genera la respuesta del asistente dado el historial reciente
	// y el mensaje nuevo del comprador.
	Reply(ctx context.Context, history []ChatTurn, userMessage string) (string, error)
}

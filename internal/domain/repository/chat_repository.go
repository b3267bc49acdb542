package repository

import "github.com/tu-usuario/pinturas-b2b/internal/domain/entity"

// ChatRepository define el puerto de persistencia para hilos de chat y mensajes (DIP).
type ChatRepository interface {
	Create(chat *entity.Chat) error
	GetByUser(userID string) (*entity.Chat, error)
	Update(chat *entity.Chat) error
	List(limit, offset int) ([]*entity.Chat, error)

	CreateMessage(msg *entity.ChatMessage) error
	// ListMessages devuelve los mensajes del hilo en orden cronológico.
	ListMessages(chatID string, limit int) ([]*entity.ChatMessage, error)
	// MarkAllRead marca como leídos todos los mensajes del comprador en el hilo.
	MarkAllRead(chatID string) error
	CountUnread(chatID string) (int, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

var _ repository.ChatRepository = (*ChatRepo)(nil)

// ChatRepo implementación del puerto ChatRepository sobre PostgreSQL.
type ChatRepo struct {
	q Querier
}

// NewChatRepository construye el adaptador de chat. Pasar pool o tx (Querier).
func NewChatRepository(q Querier) *ChatRepo {
	return &ChatRepo{q: q}
}

// Create persiste un hilo nuevo (uno por usuario).
func (r *ChatRepo) Create(chat *entity.Chat) error {
	query := `
		INSERT INTO chats (id, user_id, assistant_enabled, agent_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		chat.ID, chat.UserID, chat.AssistantEnabled, chat.AgentID, chat.CreatedAt, chat.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

// GetByUser obtiene el hilo del usuario.
func (r *ChatRepo) GetByUser(userID string) (*entity.Chat, error) {
	query := `
		SELECT id, user_id, assistant_enabled, COALESCE(agent_id, ''), created_at, updated_at
		FROM chats WHERE user_id = $1`
	var c entity.Chat
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&c.ID, &c.UserID, &c.AssistantEnabled, &c.AgentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &c, nil
}

// Update persiste el estado del hilo (asistente, gestor asignado).
func (r *ChatRepo) Update(chat *entity.Chat) error {
	query := `
		UPDATE chats
		SET assistant_enabled = $2, agent_id = NULLIF($3, ''), updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		chat.ID, chat.AssistantEnabled, chat.AgentID, chat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve hilos ordenados por actividad reciente (bandeja de gestores).
func (r *ChatRepo) List(limit, offset int) ([]*entity.Chat, error) {
	query := `
		SELECT id, user_id, assistant_enabled, COALESCE(agent_id, ''), created_at, updated_at
		FROM chats ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var out []*entity.Chat
	for rows.Next() {
		var c entity.Chat
		if err := rows.Scan(&c.ID, &c.UserID, &c.AssistantEnabled, &c.AgentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CreateMessage persiste un mensaje y toca updated_at del hilo.
func (r *ChatRepo) CreateMessage(msg *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, chat_id, role, text, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.ChatID, msg.Role, msg.Text, msg.Read, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE chats SET updated_at = $2 WHERE id = $1`, msg.ChatID, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("touch chat: %w", err)
	}
	return nil
}

// ListMessages devuelve los últimos `limit` mensajes del hilo en orden cronológico.
func (r *ChatRepo) ListMessages(chatID string, limit int) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, chat_id, role, text, read, created_at FROM (
			SELECT id, chat_id, role, text, read, created_at
			FROM chat_messages WHERE chat_id = $1
			ORDER BY created_at DESC LIMIT $2
		) recent ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var out []*entity.ChatMessage
	for rows.Next() {
		var m entity.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Text, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// MarkAllRead marca como leídos los mensajes del comprador en el hilo.
func (r *ChatRepo) MarkAllRead(chatID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE chat_messages SET read = true WHERE chat_id = $1 AND role = $2 AND read = false`,
		chatID, entity.ChatRoleBuyer)
	if err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

// CountUnread cuenta mensajes del comprador sin leer en el hilo.
func (r *ChatRepo) CountUnread(chatID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM chat_messages WHERE chat_id = $1 AND role = $2 AND read = false`,
		chatID, entity.ChatRoleBuyer).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

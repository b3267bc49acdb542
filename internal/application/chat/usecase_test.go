package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/application/chat"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

type fakeChatRepo struct {
	threads  map[string]*entity.Chat // por userID
	messages []*entity.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo { return &fakeChatRepo{threads: map[string]*entity.Chat{}} }

func (f *fakeChatRepo) Create(c *entity.Chat) error {
	cp := *c
	f.threads[c.UserID] = &cp
	return nil
}
func (f *fakeChatRepo) GetByUser(userID string) (*entity.Chat, error) {
	c, ok := f.threads[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}
func (f *fakeChatRepo) Update(c *entity.Chat) error {
	cp := *c
	f.threads[c.UserID] = &cp
	return nil
}
func (f *fakeChatRepo) List(int, int) ([]*entity.Chat, error) {
	var out []*entity.Chat
	for _, c := range f.threads {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeChatRepo) CreateMessage(m *entity.ChatMessage) error {
	cp := *m
	f.messages = append(f.messages, &cp)
	return nil
}
func (f *fakeChatRepo) ListMessages(chatID string, limit int) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
func (f *fakeChatRepo) MarkAllRead(chatID string) error {
	for _, m := range f.messages {
		if m.ChatID == chatID {
			m.Read = true
		}
	}
	return nil
}
func (f *fakeChatRepo) CountUnread(chatID string) (int, error) {
	n := 0
	for _, m := range f.messages {
		if m.ChatID == chatID && m.Role == entity.ChatRoleBuyer && !m.Read {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(*entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, domain.ErrUserNotFound }
func (f *fakeUserRepo) Update(*entity.User) error               { return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error)   { return nil, nil }
func (f *fakeUserRepo) ListByRole(string) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(string) error { return nil }

// mockAssistant registra la invocación y el contexto recibido, y devuelve
// una respuesta fija o error.
type mockAssistant struct {
	called  bool
	history []ports.ChatTurn
	reply   string
	err     error
}

func (m *mockAssistant) Reply(_ context.Context, history []ports.ChatTurn, _ string) (string, error) {
	m.called = true
	m.history = history
	return m.reply, m.err
}

func newChatUseCase(assistant ports.AssistantService) (*chat.ChatUseCase, *fakeChatRepo) {
	repo := newFakeChatRepo()
	users := &fakeUserRepo{users: map[string]*entity.User{
		"buyer1":   {ID: "buyer1", FullName: "Comprador Uno", Role: entity.RoleBuyer},
		"manager1": {ID: "manager1", FullName: "Gestor Uno", Role: entity.RoleManager},
	}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return chat.NewChatUseCase(repo, users, assistant, 6, log), repo
}

func TestPostBuyerMessage_AsistenteResponde(t *testing.T) {
	assistant := &mockAssistant{reply: "Le recomiendo el esmalte PE."}
	uc, repo := newChatUseCase(assistant)

	resp, err := uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "¿Qué pintura para metal?"})
	require.NoError(t, err)

	assert.True(t, assistant.called)
	assert.Equal(t, "Le recomiendo el esmalte PE.", resp.Response)
	assert.False(t, resp.Timestamp.IsZero())
	require.NotNil(t, resp.Message)
	assert.Equal(t, entity.ChatRoleAssistant, resp.Message.Role)
	assert.Equal(t, "Le recomiendo el esmalte PE.", resp.Message.Text)
	assert.Len(t, repo.messages, 2)
}

func TestPostBuyerMessage_AsistenteDesactivadoNoLlama(t *testing.T) {
	assistant := &mockAssistant{reply: "no debería enviarse"}
	uc, repo := newChatUseCase(assistant)

	require.NoError(t, uc.SetAssistantEnabled("buyer1", false))
	resp, err := uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "hola"})
	require.NoError(t, err)

	assert.False(t, assistant.called, "con el asistente apagado no se llama al proveedor")
	assert.Nil(t, resp.Message)
	assert.Contains(t, resp.Response, "gestor")
	assert.False(t, resp.Timestamp.IsZero())
	// el mensaje queda pendiente para el gestor
	unread, _ := repo.CountUnread(repo.threads["buyer1"].ID)
	assert.Equal(t, 1, unread)
}

func TestPostBuyerMessage_ProveedorCaidoRespondeCortesia(t *testing.T) {
	assistant := &mockAssistant{err: errors.New("timeout")}
	uc, _ := newChatUseCase(assistant)

	resp, err := uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "hola"})
	require.NoError(t, err)
	require.NotNil(t, resp.Message)
	assert.Contains(t, resp.Message.Text, "no está disponible")
}

func TestPostBuyerMessage_ContextoNoRepiteElMensajeEntrante(t *testing.T) {
	assistant := &mockAssistant{reply: "primera respuesta"}
	uc, _ := newChatUseCase(assistant)

	_, err := uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "primera pregunta"})
	require.NoError(t, err)
	assert.Empty(t, assistant.history, "el primer mensaje va sin contexto previo")

	_, err = uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "segunda pregunta"})
	require.NoError(t, err)
	require.Len(t, assistant.history, 2)
	assert.Equal(t, "primera pregunta", assistant.history[0].Text)
	assert.Equal(t, "primera respuesta", assistant.history[1].Text)
	for _, turn := range assistant.history {
		assert.NotEqual(t, "segunda pregunta", turn.Text, "la pregunta en curso va aparte, no en el historial")
	}
}

func TestPostBuyerMessage_ClavesJSONDeLaRespuesta(t *testing.T) {
	assistant := &mockAssistant{reply: "hola"}
	uc, _ := newChatUseCase(assistant)

	resp, err := uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "hola"})
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body, "response")
	assert.Contains(t, body, "timestamp")
}

func TestAssignAgent_ApagaAsistente(t *testing.T) {
	assistant := &mockAssistant{reply: "ok"}
	uc, repo := newChatUseCase(assistant)

	require.NoError(t, uc.AssignAgent("buyer1", "manager1"))

	th := repo.threads["buyer1"]
	assert.Equal(t, "manager1", th.AgentID)
	assert.False(t, th.AssistantEnabled)
}

func TestAssignAgent_RechazaCompradores(t *testing.T) {
	uc, _ := newChatUseCase(&mockAssistant{})
	err := uc.AssignAgent("buyer1", "buyer1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostAgentMessage_MarcaLeidosYAsigna(t *testing.T) {
	assistant := &mockAssistant{reply: "ok"}
	uc, repo := newChatUseCase(assistant)

	require.NoError(t, uc.SetAssistantEnabled("buyer1", false))
	_, err := uc.PostBuyerMessage(context.Background(), "buyer1", dto.PostChatMessageRequest{Message: "necesito ayuda"})
	require.NoError(t, err)

	msg, err := uc.PostAgentMessage("manager1", "buyer1", dto.PostChatMessageRequest{Message: "le atiendo"})
	require.NoError(t, err)
	assert.Equal(t, entity.ChatRoleAgent, msg.Role)

	th := repo.threads["buyer1"]
	assert.Equal(t, "manager1", th.AgentID)
	unread, _ := repo.CountUnread(th.ID)
	assert.Equal(t, 0, unread)
}

func TestGetHistory_HiloInexistente(t *testing.T) {
	uc, _ := newChatUseCase(&mockAssistant{})

	resp, err := uc.GetHistory("buyer1", 50)
	require.NoError(t, err)
	assert.Empty(t, resp.Messages)
	assert.True(t, resp.AssistantEnabled)
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func okResponse(text string) chatResponse {
	var resp chatResponse
	resp.Choices = []struct {
		Message chatMessage `json:"message"`
	}{{Message: chatMessage{Role: "assistant", Content: text}}}
	return resp
}

func TestReply_RespuestaDirecta(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "Bearer clave-de-prueba", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(okResponse("Claro, le ayudo."))
	}))
	defer srv.Close()

	svc := NewOpenRouterService(Config{
		APIKey: "clave-de-prueba", Models: []string{"modelo-a"}, BaseURL: srv.URL,
	}, testLogger())

	reply, err := svc.Reply(context.Background(),
		[]ports.ChatTurn{{Role: "user", Text: "hola"}, {Role: "assistant", Text: "buenas"}},
		"¿tienen RAL 3020?")
	require.NoError(t, err)
	assert.Equal(t, "Claro, le ayudo.", reply)

	// system + 2 turnos de historial + mensaje nuevo
	require.Len(t, gotReq.Messages, 4)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "¿tienen RAL 3020?", gotReq.Messages[3].Content)
	assert.Equal(t, "modelo-a", gotReq.Model)
}

func TestReply_FallbackAlSiguienteModelo(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		switch req.Model {
		case "modelo-a":
			w.WriteHeader(http.StatusPaymentRequired) // saldo agotado
		case "modelo-b":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_ = json.NewEncoder(w).Encode(okResponse("respuesta del tercero"))
		}
	}))
	defer srv.Close()

	svc := NewOpenRouterService(Config{
		APIKey: "k", Models: []string{"modelo-a", "modelo-b", "modelo-c"}, BaseURL: srv.URL,
	}, testLogger())

	reply, err := svc.Reply(context.Background(), nil, "hola")
	require.NoError(t, err)
	assert.Equal(t, "respuesta del tercero", reply)
	assert.Equal(t, []string{"modelo-a", "modelo-b", "modelo-c"}, models)
}

func TestReply_TodosLosModelosAgotados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewOpenRouterService(Config{
		APIKey: "k", Models: []string{"modelo-a", "modelo-b"}, BaseURL: srv.URL,
	}, testLogger())

	_, err := svc.Reply(context.Background(), nil, "hola")
	assert.ErrorIs(t, err, ports.ErrAssistantUnavailable)
}

func TestReply_ErrorNoRecuperableCorta(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewOpenRouterService(Config{
		APIKey: "k", Models: []string{"modelo-a", "modelo-b"}, BaseURL: srv.URL,
	}, testLogger())

	_, err := svc.Reply(context.Background(), nil, "hola")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "un 400 no debe probar más modelos")
}

func TestReply_SinAPIKey(t *testing.T) {
	svc := NewOpenRouterService(Config{Models: []string{"m"}}, testLogger())
	_, err := svc.Reply(context.Background(), nil, "hola")
	assert.ErrorIs(t, err, ports.ErrAssistantUnavailable)
}

func TestReply_EnfriamientoEntrePeticiones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(okResponse("ok"))
	}))
	defer srv.Close()

	svc := NewOpenRouterService(Config{
		APIKey: "k", Models: []string{"m"}, BaseURL: srv.URL, Cooldown: 100 * time.Millisecond,
	}, testLogger())

	start := time.Now()
	_, err := svc.Reply(context.Background(), nil, "uno")
	require.NoError(t, err)
	_, err = svc.Reply(context.Background(), nil, "dos")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

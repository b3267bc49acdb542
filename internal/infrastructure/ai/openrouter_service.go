// Package ai contiene los adaptadores de proveedores LLM para el asistente del chat.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// Verificar en tiempo de compilación que OpenRouterService implementa AssistantService.
var _ ports.AssistantService = (*OpenRouterService)(nil)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"

	systemPrompt = `Eres el asistente del portal B2B de una fábrica de pinturas y recubrimientos industriales.
Atiendes a compradores profesionales: respondes sobre el catálogo (esmaltes, imprimaciones, recubrimientos en polvo),
códigos de color RAL, vidas útiles y partidas en stock, y sobre el estado de sus pedidos.
Responde de forma breve y cortés. Si la consulta requiere condiciones comerciales, precios especiales
o reclamaciones, indica que un gestor continuará la conversación.`
)

// OpenRouterService adaptador que implementa AssistantService contra la API de
// OpenRouter (compatible con Chat Completions). Usa net/http; sin SDK.
//
// Dos mecanismos de resiliencia:
//   - lista de modelos en orden de preferencia: si un modelo responde 402
//     (saldo agotado) o 429 (rate limit) se prueba el siguiente;
//   - enfriamiento global entre peticiones para no agotar la cuota.
type OpenRouterService struct {
	apiKey     string
	models     []string
	baseURL    string
	cooldown   time.Duration
	httpClient *http.Client
	log        *logger.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// Config parámetros del adaptador.
type Config struct {
	APIKey   string
	Models   []string // orden de preferencia
	BaseURL  string   // vacío = producción
	Cooldown time.Duration
}

// NewOpenRouterService construye el adaptador. Si apiKey está vacío las
// llamadas devuelven ErrAssistantUnavailable en lugar de panic.
func NewOpenRouterService(cfg Config, log *logger.Logger) *OpenRouterService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenRouterService{
		apiKey:     cfg.APIKey,
		models:     cfg.Models,
		baseURL:    baseURL,
		cooldown:   cfg.Cooldown,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// ── Estructuras del protocolo Chat Completions ───────────────────────────────

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Reply genera la respuesta del asistente. Recorre los modelos configurados en
// orden; 402 y 429 pasan al siguiente modelo, cualquier otro fallo corta.
func (s *OpenRouterService) Reply(ctx context.Context, history []ports.ChatTurn, userMessage string) (string, error) {
	if s.apiKey == "" || len(s.models) == 0 {
		return "", ports.ErrAssistantUnavailable
	}

	s.waitCooldown(ctx)

	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Text})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	var lastErr error
	for _, model := range s.models {
		reply, retryable, err := s.call(ctx, model, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
		s.log.Warn().Err(err).Str("model", model).Msg("modelo agotado o limitado, probando el siguiente")
	}
	return "", fmt.Errorf("%w: %v", ports.ErrAssistantUnavailable, lastErr)
}

// call hace una petición a un modelo concreto. retryable=true para 402/429.
func (s *OpenRouterService) call(ctx context.Context, model string, messages []chatMessage) (reply string, retryable bool, err error) {
	body, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", false, fmt.Errorf("assistant: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("assistant: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, fmt.Errorf("assistant: timeout o cancelación: %w", ctx.Err())
		}
		return "", false, fmt.Errorf("assistant: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", false, fmt.Errorf("assistant: leer respuesta: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// seguir abajo
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return "", true, fmt.Errorf("assistant: %s HTTP %d", model, resp.StatusCode)
	default:
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", false, fmt.Errorf("assistant: OpenRouter error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", false, fmt.Errorf("assistant: OpenRouter HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", false, fmt.Errorf("assistant: deserializar respuesta: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", false, fmt.Errorf("assistant: respuesta vacía del modelo %s", model)
	}
	return chatResp.Choices[0].Message.Content, false, nil
}

// waitCooldown serializa las peticiones dejando al menos `cooldown` entre ellas.
func (s *OpenRouterService) waitCooldown(ctx context.Context) {
	if s.cooldown <= 0 {
		return
	}
	s.mu.Lock()
	wait := s.cooldown - time.Since(s.lastCall)
	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	s.lastCall = time.Now()
	s.mu.Unlock()
}

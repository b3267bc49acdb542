// Package dadata implementa la verificación de contrapartes por INN contra la
// API de sugerencias de DaData (findById/party).
package dadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa CompanyLookupService.
var _ ports.CompanyLookupService = (*Client)(nil)

const defaultBaseURL = "https://suggestions.dadata.ru/suggestions/api/4_1/rs"

// Client adaptador HTTP del servicio de verificación. Usa net/http; sin SDK.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL vacío = producción.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:      token,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ── Estructuras del protocolo findById/party ─────────────────────────────────

type findByIDRequest struct {
	Query string `json:"query"`
}

type findByIDResponse struct {
	Suggestions []struct {
		Value string `json:"value"` // razón social
		Data  struct {
			INN     string `json:"inn"`
			KPP     string `json:"kpp"`
			OGRN    string `json:"ogrn"`
			Address struct {
				Value string `json:"value"`
			} `json:"address"`
			Management struct {
				Name string `json:"name"`
			} `json:"management"`
		} `json:"data"`
	} `json:"suggestions"`
}

// FindByTaxID busca la organización por INN. Devuelve ErrCompanyNotFound si el
// registro no tiene sugerencias para ese INN.
func (c *Client) FindByTaxID(ctx context.Context, taxID string) (*ports.CompanyInfo, error) {
	if c.token == "" {
		return nil, ports.ErrLookupUnauthorized
	}

	body, err := json.Marshal(findByIDRequest{Query: taxID})
	if err != nil {
		return nil, fmt.Errorf("dadata: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/findById/party", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dadata: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dadata: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("dadata: leer respuesta: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// seguir abajo
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ports.ErrLookupUnauthorized
	case http.StatusTooManyRequests:
		return nil, ports.ErrLookupRateLimited
	default:
		return nil, fmt.Errorf("dadata: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var parsed findByIDResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return nil, fmt.Errorf("dadata: deserializar respuesta: %w", err)
	}
	if len(parsed.Suggestions) == 0 {
		return nil, ports.ErrCompanyNotFound
	}

	s := parsed.Suggestions[0]
	return &ports.CompanyInfo{
		Name:       s.Value,
		Address:    s.Data.Address.Value,
		TaxID:      s.Data.INN,
		KPP:        s.Data.KPP,
		OGRN:       s.Data.OGRN,
		Management: s.Data.Management.Name,
	}, nil
}

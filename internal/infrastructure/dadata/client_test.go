package dadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
)

func TestFindByTaxID_Encontrada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/findById/party", r.URL.Path)
		assert.Equal(t, "Token t-123", r.Header.Get("Authorization"))

		var req findByIDRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "7712345678", req.Query)

		_, _ = w.Write([]byte(`{
			"suggestions": [{
				"value": "OOO Pinturas del Norte",
				"data": {
					"inn": "7712345678",
					"kpp": "771201001",
					"ogrn": "1157746000000",
					"address": {"value": "Moscú, c/ Fabril 1"},
					"management": {"name": "Ivanov Ivan"}
				}
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("t-123", srv.URL)
	info, err := c.FindByTaxID(context.Background(), "7712345678")
	require.NoError(t, err)

	assert.Equal(t, "OOO Pinturas del Norte", info.Name)
	assert.Equal(t, "7712345678", info.TaxID)
	assert.Equal(t, "771201001", info.KPP)
	assert.Equal(t, "1157746000000", info.OGRN)
	assert.Equal(t, "Moscú, c/ Fabril 1", info.Address)
	assert.Equal(t, "Ivanov Ivan", info.Management)
}

func TestFindByTaxID_SinSugerencias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"suggestions": []}`))
	}))
	defer srv.Close()

	c := NewClient("t-123", srv.URL)
	_, err := c.FindByTaxID(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ports.ErrCompanyNotFound)
}

func TestFindByTaxID_TokenInvalido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("t-malo", srv.URL)
	_, err := c.FindByTaxID(context.Background(), "7712345678")
	assert.ErrorIs(t, err, ports.ErrLookupUnauthorized)
}

func TestFindByTaxID_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("t-123", srv.URL)
	_, err := c.FindByTaxID(context.Background(), "7712345678")
	assert.ErrorIs(t, err, ports.ErrLookupRateLimited)
}

func TestFindByTaxID_SinToken(t *testing.T) {
	c := NewClient("", "")
	_, err := c.FindByTaxID(context.Background(), "7712345678")
	assert.ErrorIs(t, err, ports.ErrLookupUnauthorized)
}

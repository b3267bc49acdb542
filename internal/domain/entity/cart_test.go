package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

func TestCartKey_RoundTrip(t *testing.T) {
	key := entity.CartKey("p1", "3020", "b7")
	assert.Equal(t, "p1|3020|b7", key)

	productID, color, batchID, ok := entity.ParseCartKey(key)
	require.True(t, ok)
	assert.Equal(t, "p1", productID)
	assert.Equal(t, "3020", color)
	assert.Equal(t, "b7", batchID)
}

// Los campos opcionales vacíos forman parte de la identidad.
func TestCartKey_CamposVacios(t *testing.T) {
	key := entity.CartKey("p1", "", "")
	productID, color, batchID, ok := entity.ParseCartKey(key)
	require.True(t, ok)
	assert.Equal(t, "p1", productID)
	assert.Empty(t, color)
	assert.Empty(t, batchID)
}

func TestParseCartKey_Invalida(t *testing.T) {
	_, _, _, ok := entity.ParseCartKey("sin-separadores")
	assert.False(t, ok)

	_, _, _, ok = entity.ParseCartKey("|3020|b1")
	assert.False(t, ok, "clave sin producto debe rechazarse")
}

// La forma canónica se impone en la frontera de escritura: dígitos de hasta
// 4 caracteres, con o sin prefijo "RAL".
func TestNormalizeColorCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"3020", "3020", true},
		{"RAL 3020", "3020", true},
		{"ral3020", "3020", true},
		{"  9016 ", "9016", true},
		{"", "", true},
		{"RAL", "", true},
		{"30201", "", false},          // demasiado largo
		{"rojo señales", "", false},   // texto descriptivo, no código
		{"30a0", "", false},           // no numérico
	}
	for _, tc := range cases {
		got, ok := entity.NormalizeColorCode(tc.in)
		assert.Equal(t, tc.ok, ok, "entrada %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "entrada %q", tc.in)
		}
	}
}

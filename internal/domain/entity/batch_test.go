package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

func TestBatch_ExpiresAt(t *testing.T) {
	produced := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	b := &entity.Batch{ProducedAt: produced}

	assert.Equal(t, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), b.ExpiresAt(12))
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), b.ExpiresAt(6))
	assert.Equal(t, produced, b.ExpiresAt(0))
}

func TestBatch_Consume_TopeEnCero(t *testing.T) {
	b := &entity.Batch{Quantity: 10}

	taken := b.Consume(4)
	assert.Equal(t, 4, taken)
	assert.Equal(t, 6, b.Quantity)

	// Consumir más de lo disponible deja la partida en cero, nunca negativa.
	taken = b.Consume(8)
	assert.Equal(t, 6, taken)
	assert.Equal(t, 0, b.Quantity)

	taken = b.Consume(3)
	assert.Equal(t, 0, taken)
	assert.Equal(t, 0, b.Quantity)
}

func TestBatch_Consume_CantidadNoPositiva(t *testing.T) {
	b := &entity.Batch{Quantity: 5}
	assert.Equal(t, 0, b.Consume(0))
	assert.Equal(t, 0, b.Consume(-2))
	assert.Equal(t, 5, b.Quantity)
}

package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

// La secuencia feliz del pedido: pending_moderation → approved → completed.
func TestCanTransition_SecuenciaCompleta(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.StatusPendingModeration, entity.StatusApproved))
	assert.True(t, entity.CanTransition(entity.StatusApproved, entity.StatusCompleted))
}

// Cancelación permitida desde los dos estados no terminales.
func TestCanTransition_CancelacionDesdeEstadosAbiertos(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.StatusPendingModeration, entity.StatusCancelled))
	assert.True(t, entity.CanTransition(entity.StatusApproved, entity.StatusCancelled))
}

// Los estados terminales no tienen salida: no se reabre un pedido.
func TestCanTransition_EstadosTerminalesSinSalida(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.StatusCompleted, entity.StatusApproved),
		"completed → approved debe rechazarse")
	assert.False(t, entity.CanTransition(entity.StatusCompleted, entity.StatusCancelled))
	assert.False(t, entity.CanTransition(entity.StatusCancelled, entity.StatusPendingModeration))
	assert.False(t, entity.CanTransition(entity.StatusCancelled, entity.StatusApproved))
}

// No se permite saltar la moderación.
func TestCanTransition_SinSaltos(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.StatusPendingModeration, entity.StatusCompleted))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, entity.ValidStatus(entity.StatusApproved))
	assert.False(t, entity.ValidStatus("shipped"))
	assert.False(t, entity.ValidStatus(""))
}

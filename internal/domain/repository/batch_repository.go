package repository

import "github.com/tu-usuario/pinturas-b2b/internal/domain/entity"

// BatchRepository define el puerto de persistencia para partidas de stock (DIP).
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate obtiene la partida bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	// ListAvailable devuelve partidas con cantidad > 0 ordenadas por
	// nomenclatura+color y fecha de producción ascendente.
	ListAvailable() ([]*entity.Batch, error)
	// ListAll incluye partidas agotadas (vista de administración/auditoría).
	ListAll() ([]*entity.Batch, error)
	ListByProduct(productID string) ([]*entity.Batch, error)
	Delete(id string) error
}

package repository

import "github.com/tu-usuario/pinturas-b2b/internal/domain/entity"

// CartRepository define el puerto de persistencia del carrito por usuario (DIP).
// La identidad de una entrada es (producto, color, partida); Upsert reemplaza
// la cantidad de la entrada con esa identidad.
type CartRepository interface {
	Upsert(entry *entity.CartEntry) error
	Get(userID, productID, colorCode, batchID string) (*entity.CartEntry, error)
	ListByUser(userID string) ([]*entity.CartEntry, error)
	Delete(userID, productID, colorCode, batchID string) error
	Clear(userID string) error
}

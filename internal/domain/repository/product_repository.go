package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByNomenclature(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdatePrice(productID string, price decimal.Decimal) error
	List(category string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

package repository

import "github.com/tu-usuario/pinturas-b2b/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos y sus líneas (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	UpdateStatus(order *entity.Order) error
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	List(status string, limit, offset int) ([]*entity.Order, error)

	// Líneas del pedido: inmutables una vez escritas.
	CreateProductionItem(item *entity.ProductionItem) error
	CreateStockItem(item *entity.StockItem) error
	GetProductionItems(orderID string) ([]*entity.ProductionItem, error)
	GetStockItems(orderID string) ([]*entity.StockItem, error)
}

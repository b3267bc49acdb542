package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, user_id, status, COALESCE(cancel_reason, ''), shipment_date, created_at, updated_at`

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, status, cancel_reason, shipment_date, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.UserID, order.Status, order.CancelReason, order.ShipmentDate,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.UserID, &o.Status, &o.CancelReason, &o.ShipmentDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus persiste estado, motivo de cancelación y fecha de envío.
func (r *OrderRepo) UpdateStatus(order *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, cancel_reason = NULLIF($3, ''), shipment_date = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.CancelReason, order.ShipmentDate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// List pedidos de todos los usuarios, opcionalmente filtrados por estado.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// CreateProductionItem escribe una línea a fabricar.
func (r *OrderRepo) CreateProductionItem(item *entity.ProductionItem) error {
	query := `
		INSERT INTO order_production_items (order_id, product_id, color_code, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.OrderID, item.ProductID, item.ColorCode, item.Quantity, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production item: %w", err)
	}
	return nil
}

// CreateStockItem escribe una línea servida desde partida.
func (r *OrderRepo) CreateStockItem(item *entity.StockItem) error {
	query := `INSERT INTO order_stock_items (order_id, batch_id, quantity) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, item.OrderID, item.BatchID, item.Quantity)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetProductionItems líneas a fabricar del pedido.
func (r *OrderRepo) GetProductionItems(orderID string) ([]*entity.ProductionItem, error) {
	query := `
		SELECT order_id, product_id, color_code, quantity, created_at
		FROM order_production_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list production items: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionItem
	for rows.Next() {
		var it entity.ProductionItem
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.ColorCode, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// GetStockItems líneas de partida del pedido.
func (r *OrderRepo) GetStockItems(orderID string) ([]*entity.StockItem, error) {
	query := `SELECT order_id, batch_id, quantity FROM order_stock_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockItem
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.OrderID, &it.BatchID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.CancelReason, &o.ShipmentDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

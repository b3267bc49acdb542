package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para el panel de analítica.
// Los ingresos se calculan con el precio actual del producto: las líneas de
// pedido no llevan precio propio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// lineRevenueCTE une las líneas de producción y de stock de cada pedido con
// su importe. Se reutiliza en varias consultas del panel.
const lineRevenueCTE = `
	WITH order_lines AS (
		SELECT i.order_id, i.product_id, i.quantity
		FROM order_production_items i
		UNION ALL
		SELECT i.order_id, b.product_id, i.quantity
		FROM order_stock_items i
		JOIN batches b ON b.id = i.batch_id
	),
	line_revenue AS (
		SELECT l.order_id, l.product_id, l.quantity,
		       l.quantity * p.price AS amount
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
	)`

// GetDailySales agrupa ingresos y número de pedidos por día del período.
// Solo cuenta pedidos aprobados o completados.
func (r *AnalyticsRepo) GetDailySales(ctx context.Context, startDate, endDate time.Time) ([]repository.DailySalesResult, error) {
	query := lineRevenueCTE + `
		SELECT date_trunc('day', o.created_at) AS day,
		       COALESCE(SUM(lr.amount), 0) AS revenue,
		       COUNT(DISTINCT o.id) AS order_count
		FROM orders o
		JOIN line_revenue lr ON lr.order_id = o.id
		WHERE o.status IN ($1, $2) AND o.created_at BETWEEN $3 AND $4
		GROUP BY 1 ORDER BY 1`
	rows, err := r.q.Query(ctx, query, entity.StatusApproved, entity.StatusCompleted, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	var out []repository.DailySalesResult
	for rows.Next() {
		var res repository.DailySalesResult
		if err := rows.Scan(&res.Day, &res.Revenue, &res.OrderCount); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetProductPopularity devuelve los productos con más unidades pedidas en el período.
func (r *AnalyticsRepo) GetProductPopularity(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.ProductPopularityResult, error) {
	query := lineRevenueCTE + `
		SELECT p.id, p.title, COALESCE(SUM(lr.quantity), 0) AS qty
		FROM line_revenue lr
		JOIN orders o ON o.id = lr.order_id
		JOIN products p ON p.id = lr.product_id
		WHERE o.created_at BETWEEN $1 AND $2
		GROUP BY p.id, p.title
		ORDER BY qty DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("product popularity: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductPopularityResult
	for rows.Next() {
		var res repository.ProductPopularityResult
		if err := rows.Scan(&res.ProductID, &res.Title, &res.Quantity); err != nil {
			return nil, fmt.Errorf("scan product popularity: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetOrderStatusDistribution cuenta pedidos por estado en el período.
func (r *AnalyticsRepo) GetOrderStatusDistribution(ctx context.Context, startDate, endDate time.Time) ([]repository.StatusCountResult, error) {
	query := `
		SELECT status, COUNT(*) FROM orders
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY status ORDER BY status`
	rows, err := r.q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	defer rows.Close()

	var out []repository.StatusCountResult
	for rows.Next() {
		var res repository.StatusCountResult
		if err := rows.Scan(&res.Status, &res.Count); err != nil {
			return nil, fmt.Errorf("scan status distribution: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetStockByProduct suma las existencias de las partidas por producto.
func (r *AnalyticsRepo) GetStockByProduct(ctx context.Context) ([]repository.StockLevelResult, error) {
	query := `
		SELECT p.title, COALESCE(SUM(b.quantity), 0)
		FROM batches b
		JOIN products p ON p.id = b.product_id
		GROUP BY p.title ORDER BY p.title`
	return r.stockLevels(ctx, query)
}

// GetStockByColor suma las existencias de las partidas por código RAL.
func (r *AnalyticsRepo) GetStockByColor(ctx context.Context) ([]repository.StockLevelResult, error) {
	query := `
		SELECT b.color_code, COALESCE(SUM(b.quantity), 0)
		FROM batches b
		GROUP BY b.color_code ORDER BY b.color_code`
	return r.stockLevels(ctx, query)
}

// GetNewUsersByMonth agrupa altas de compradores por mes del período.
func (r *AnalyticsRepo) GetNewUsersByMonth(ctx context.Context, startDate, endDate time.Time) ([]repository.MonthlyUsersResult, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
		FROM users
		WHERE role = $1 AND created_at BETWEEN $2 AND $3
		GROUP BY 1 ORDER BY 1`
	rows, err := r.q.Query(ctx, query, entity.RoleBuyer, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("new users by month: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyUsersResult
	for rows.Next() {
		var res repository.MonthlyUsersResult
		if err := rows.Scan(&res.Month, &res.NewUsers); err != nil {
			return nil, fmt.Errorf("scan new users: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetRevenueMetrics ingresos y pedidos válidos del rango. COALESCE devuelve cero sin filas.
func (r *AnalyticsRepo) GetRevenueMetrics(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, int, error) {
	query := lineRevenueCTE + `
		SELECT COALESCE(SUM(lr.amount), 0), COUNT(DISTINCT o.id)
		FROM orders o
		JOIN line_revenue lr ON lr.order_id = o.id
		WHERE o.status IN ($1, $2) AND o.created_at BETWEEN $3 AND $4`
	var revenue decimal.Decimal
	var orders int
	err := r.q.QueryRow(ctx, query, entity.StatusApproved, entity.StatusCompleted, startDate, endDate).
		Scan(&revenue, &orders)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("revenue metrics: %w", err)
	}
	return revenue, orders, nil
}

// CountOrdersByStatus cuenta pedidos en el estado dado.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by status: %w", err)
	}
	return n, nil
}

// CountLowStockBatches cuenta partidas con 0 < cantidad <= threshold.
func (r *AnalyticsRepo) CountLowStockBatches(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM batches WHERE quantity > 0 AND quantity <= $1`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock batches: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) stockLevels(ctx context.Context, query string) ([]repository.StockLevelResult, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock levels: %w", err)
	}
	defer rows.Close()

	var out []repository.StockLevelResult
	for rows.Next() {
		var res repository.StockLevelResult
		if err := rows.Scan(&res.Label, &res.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

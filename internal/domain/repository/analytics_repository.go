package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult resultado crudo de la consulta de ventas por día.
// Lo produce la DB; el use case lo convierte en datasets para gráficos.
type DailySalesResult struct {
	Day        time.Time
	Revenue    decimal.Decimal // suma de qty × precio actual de las líneas
	OrderCount int
}

// ProductPopularityResult unidades pedidas por producto en el período.
type ProductPopularityResult struct {
	ProductID string
	Title     string
	Quantity  int
}

// StatusCountResult pedidos agrupados por estado.
type StatusCountResult struct {
	Status string
	Count  int
}

// StockLevelResult stock restante agrupado por una dimensión (producto o RAL).
type StockLevelResult struct {
	Label    string
	Quantity int
}

// MonthlyUsersResult altas de usuarios agrupadas por mes ("2026-03").
type MonthlyUsersResult struct {
	Month    string
	NewUsers int
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetDailySales agrupa ingresos y número de pedidos por día del período.
	// Solo cuenta pedidos aprobados o completados.
	GetDailySales(ctx context.Context, startDate, endDate time.Time) ([]DailySalesResult, error)

	// GetProductPopularity devuelve los `limit` productos con más unidades
	// pedidas en el período (líneas de producción + líneas de stock).
	GetProductPopularity(ctx context.Context, startDate, endDate time.Time, limit int) ([]ProductPopularityResult, error)

	// GetOrderStatusDistribution cuenta pedidos por estado en el período.
	GetOrderStatusDistribution(ctx context.Context, startDate, endDate time.Time) ([]StatusCountResult, error)

	// GetStockByProduct y GetStockByColor suman cantidades restantes de las
	// partidas agrupadas por producto y por código RAL respectivamente.
	GetStockByProduct(ctx context.Context) ([]StockLevelResult, error)
	GetStockByColor(ctx context.Context) ([]StockLevelResult, error)

	// GetNewUsersByMonth agrupa altas de compradores por mes del período.
	GetNewUsersByMonth(ctx context.Context, startDate, endDate time.Time) ([]MonthlyUsersResult, error)

	// ── Métricas del resumen del dashboard ────────────────────────────────────

	// GetRevenueMetrics devuelve ingresos y número de pedidos válidos del
	// rango de fechas. Usa COALESCE para devolver cero si no hay filas.
	GetRevenueMetrics(ctx context.Context, startDate, endDate time.Time) (revenue decimal.Decimal, orders int, err error)

	// CountOrdersByStatus cuenta pedidos en el estado dado (sin rango).
	CountOrdersByStatus(ctx context.Context, status string) (int, error)

	// CountLowStockBatches cuenta partidas con 0 < cantidad <= threshold.
	CountLowStockBatches(ctx context.Context, threshold int) (int, error)
}

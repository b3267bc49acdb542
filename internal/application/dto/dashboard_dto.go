package dto

import "github.com/shopspring/decimal"

// ChartDataset serie de un gráfico en el formato que consume el front.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartDataDTO estructura de gráfico {labels, datasets}.
type ChartDataDTO struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// DashboardSummaryDTO tarjetas resumen del panel de analítica.
type DashboardSummaryDTO struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AverageOrder     decimal.Decimal `json:"average_order"`
	PendingOrders    int             `json:"pending_orders"`
	CompletedOrders  int             `json:"completed_orders"`
	CancelledOrders  int             `json:"cancelled_orders"`
	LowStockBatches  int             `json:"low_stock_batches"`
	GeneratedAtEpoch int64           `json:"generated_at"`
}

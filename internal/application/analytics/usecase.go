// Package analytics contiene los casos de uso del panel de analítica del
// back office: resumen de negocio y series para gráficos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

const (
	popularityTop     = 10 // productos en el gráfico de popularidad
	lowStockThreshold = 5  // unidades restantes para considerar stock bajo
	defaultRangeDays  = 30
)

// AnalyticsUseCase produce el resumen y las series de gráficos del panel.
// Las series salen en formato {labels, datasets} listo para el front.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// normalizeRange aplica el rango por defecto (últimos 30 días) si falta algún extremo.
func normalizeRange(start, end time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		now := time.Now()
		end = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultRangeDays)
	}
	return start, end
}

// GetSummary construye las tarjetas del panel.
//
// Tres llamadas en paralelo:
//  1. GetRevenueMetrics(rango)      → ingresos y pedidos válidos
//  2. CountOrdersByStatus (x3)      → pendientes, completados, cancelados
//  3. CountLowStockBatches          → partidas con poco stock
func (uc *AnalyticsUseCase) GetSummary(ctx context.Context, start, end time.Time) (*dto.DashboardSummaryDTO, error) {
	start, end = normalizeRange(start, end)

	type revenueResult struct {
		revenue decimal.Decimal
		orders  int
		err     error
	}
	type statusResult struct {
		pending, completed, cancelled int
		err                           error
	}
	type stockResult struct {
		low int
		err error
	}

	revenueCh := make(chan revenueResult, 1)
	statusCh := make(chan statusResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		rev, orders, err := uc.analyticsRepo.GetRevenueMetrics(ctx, start, end)
		revenueCh <- revenueResult{rev, orders, err}
	}()
	go func() {
		var res statusResult
		res.pending, res.err = uc.analyticsRepo.CountOrdersByStatus(ctx, entity.StatusPendingModeration)
		if res.err == nil {
			res.completed, res.err = uc.analyticsRepo.CountOrdersByStatus(ctx, entity.StatusCompleted)
		}
		if res.err == nil {
			res.cancelled, res.err = uc.analyticsRepo.CountOrdersByStatus(ctx, entity.StatusCancelled)
		}
		statusCh <- res
	}()
	go func() {
		low, err := uc.analyticsRepo.CountLowStockBatches(ctx, lowStockThreshold)
		stockCh <- stockResult{low, err}
	}()

	revenue := <-revenueCh
	status := <-statusCh
	lowStock := <-stockCh

	if revenue.err != nil {
		return nil, fmt.Errorf("panel: métricas de ingresos: %w", revenue.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("panel: pedidos por estado: %w", status.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("panel: partidas con stock bajo: %w", lowStock.err)
	}

	avg := decimal.Zero
	if revenue.orders > 0 {
		avg = revenue.revenue.Div(decimal.NewFromInt(int64(revenue.orders))).Round(2)
	}
	return &dto.DashboardSummaryDTO{
		TotalRevenue:     revenue.revenue.Round(2),
		AverageOrder:     avg,
		PendingOrders:    status.pending,
		CompletedOrders:  status.completed,
		CancelledOrders:  status.cancelled,
		LowStockBatches:  lowStock.low,
		GeneratedAtEpoch: time.Now().Unix(),
	}, nil
}

// SalesTrend serie diaria de ingresos y número de pedidos.
func (uc *AnalyticsUseCase) SalesTrend(ctx context.Context, start, end time.Time) (*dto.ChartDataDTO, error) {
	start, end = normalizeRange(start, end)
	rows, err := uc.analyticsRepo.GetDailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	chart := &dto.ChartDataDTO{
		Labels: make([]string, 0, len(rows)),
		Datasets: []dto.ChartDataset{
			{Label: "Ingresos", Data: make([]float64, 0, len(rows))},
			{Label: "Pedidos", Data: make([]float64, 0, len(rows))},
		},
	}
	for _, r := range rows {
		chart.Labels = append(chart.Labels, r.Day.Format("2006-01-02"))
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, r.Revenue.InexactFloat64())
		chart.Datasets[1].Data = append(chart.Datasets[1].Data, float64(r.OrderCount))
	}
	return chart, nil
}

// ProductPopularity unidades pedidas por producto (top 10 del rango).
func (uc *AnalyticsUseCase) ProductPopularity(ctx context.Context, start, end time.Time) (*dto.ChartDataDTO, error) {
	start, end = normalizeRange(start, end)
	rows, err := uc.analyticsRepo.GetProductPopularity(ctx, start, end, popularityTop)
	if err != nil {
		return nil, err
	}
	chart := &dto.ChartDataDTO{Datasets: []dto.ChartDataset{{Label: "Unidades pedidas"}}}
	for _, r := range rows {
		chart.Labels = append(chart.Labels, r.Title)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, float64(r.Quantity))
	}
	return chart, nil
}

// OrderStatusDistribution pedidos por estado en el rango.
func (uc *AnalyticsUseCase) OrderStatusDistribution(ctx context.Context, start, end time.Time) (*dto.ChartDataDTO, error) {
	start, end = normalizeRange(start, end)
	rows, err := uc.analyticsRepo.GetOrderStatusDistribution(ctx, start, end)
	if err != nil {
		return nil, err
	}
	chart := &dto.ChartDataDTO{Datasets: []dto.ChartDataset{{Label: "Pedidos"}}}
	for _, r := range rows {
		chart.Labels = append(chart.Labels, r.Status)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, float64(r.Count))
	}
	return chart, nil
}

// StockByProduct existencias agrupadas por producto.
func (uc *AnalyticsUseCase) StockByProduct(ctx context.Context) (*dto.ChartDataDTO, error) {
	rows, err := uc.analyticsRepo.GetStockByProduct(ctx)
	if err != nil {
		return nil, err
	}
	return stockChart(rows), nil
}

// StockByColor existencias agrupadas por código RAL.
func (uc *AnalyticsUseCase) StockByColor(ctx context.Context) (*dto.ChartDataDTO, error) {
	rows, err := uc.analyticsRepo.GetStockByColor(ctx)
	if err != nil {
		return nil, err
	}
	return stockChart(rows), nil
}

// UserActivity altas de compradores por mes.
func (uc *AnalyticsUseCase) UserActivity(ctx context.Context, start, end time.Time) (*dto.ChartDataDTO, error) {
	start, end = normalizeRange(start, end)
	rows, err := uc.analyticsRepo.GetNewUsersByMonth(ctx, start, end)
	if err != nil {
		return nil, err
	}
	chart := &dto.ChartDataDTO{Datasets: []dto.ChartDataset{{Label: "Altas"}}}
	for _, r := range rows {
		chart.Labels = append(chart.Labels, r.Month)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, float64(r.NewUsers))
	}
	return chart, nil
}

func stockChart(rows []repository.StockLevelResult) *dto.ChartDataDTO {
	chart := &dto.ChartDataDTO{Datasets: []dto.ChartDataset{{Label: "Unidades"}}}
	for _, r := range rows {
		label := r.Label
		if label == "" {
			label = "sin color"
		}
		chart.Labels = append(chart.Labels, label)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, float64(r.Quantity))
	}
	return chart
}

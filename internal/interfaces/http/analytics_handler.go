package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/analytics"
)

// AnalyticsHandler expone el resumen del panel y las series para Chart.js.
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// rangeFromQuery lee start/end (YYYY-MM-DD). Valores ausentes o mal formados
// quedan en cero y el caso de uso aplica el rango por defecto.
func rangeFromQuery(c *fiber.Ctx) (time.Time, time.Time) {
	var start, end time.Time
	if s := c.Query("start"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			start = t
		}
	}
	if s := c.Query("end"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			end = t.Add(24*time.Hour - time.Second)
		}
	}
	return start, end
}

// Summary godoc
// @Summary      Tarjetas del panel
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/manager/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	start, end := rangeFromQuery(c)
	out, err := h.uc.GetSummary(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// SalesTrend godoc
// @Summary      Serie de ventas por día
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/manager/analytics/sales [get]
func (h *AnalyticsHandler) SalesTrend(c *fiber.Ctx) error {
	start, end := rangeFromQuery(c)
	out, err := h.uc.SalesTrend(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ProductPopularity godoc
// @Summary      Productos más vendidos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/manager/analytics/products [get]
func (h *AnalyticsHandler) ProductPopularity(c *fiber.Ctx) error {
	start, end := rangeFromQuery(c)
	out, err := h.uc.ProductPopularity(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// OrderStatuses godoc
// @Summary      Distribución de pedidos por estado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/manager/analytics/statuses [get]
func (h *AnalyticsHandler) OrderStatuses(c *fiber.Ctx) error {
	start, end := rangeFromQuery(c)
	out, err := h.uc.OrderStatusDistribution(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// StockByProduct godoc
// @Summary      Existencias por nomenclatura
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/manager/analytics/stock-by-product [get]
func (h *AnalyticsHandler) StockByProduct(c *fiber.Ctx) error {
	out, err := h.uc.StockByProduct(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// StockByColor godoc
// @Summary      Existencias por color RAL
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/manager/analytics/stock-by-color [get]
func (h *AnalyticsHandler) StockByColor(c *fiber.Ctx) error {
	out, err := h.uc.StockByColor(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// UserActivity godoc
// @Summary      Altas de compradores por mes
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200  {object}  dto.ChartDataDTO
// @Router       /api/manager/analytics/user-activity [get]
func (h *AnalyticsHandler) UserActivity(c *fiber.Ctx) error {
	start, end := rangeFromQuery(c)
	out, err := h.uc.UserActivity(c.Context(), start, end)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateOrderStatusRequest entrada para moderar un pedido (manager/admin).
// Reason solo se usa al cancelar; ShipmentDate solo al aprobar.
type UpdateOrderStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=approved completed cancelled"`
	Reason       string `json:"reason" validate:"omitempty,max=1000"`
	ShipmentDate string `json:"shipment_date" validate:"omitempty,datetime=2006-01-02"`
}

// OrderItemResponse línea de pedido unificada para presentación.
// Source distingue el origen: "production" (a fabricar) o "stock" (de partida).
type OrderItemResponse struct {
	Source       string          `json:"source"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	ColorCode    string          `json:"color_code,omitempty"`
	BatchID      string          `json:"batch_id,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido completo con sus líneas.
type OrderResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	Status       string              `json:"status"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	ShipmentDate *time.Time          `json:"shipment_date,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	Total        decimal.Decimal     `json:"total"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos (sin líneas, solo cabeceras).
type OrderListResponse struct {
	Items []OrderSummaryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// OrderSummaryResponse cabecera de pedido para listados.
type OrderSummaryResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	ShipmentDate *time.Time `json:"shipment_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

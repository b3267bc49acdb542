package dto

import "github.com/shopspring/decimal"

// AddToCartRequest entrada para añadir una posición al carrito.
// ColorCode acepta "3020" o "RAL 3020"; se normaliza al código canónico.
// BatchID vacío = línea a fabricar.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	ColorCode string `json:"color_code" validate:"omitempty,max=10"`
	BatchID   string `json:"batch_id"`
}

// ChangeCartRequest entrada para ajustar la cantidad de una entrada existente.
// Delta puede ser negativo; si la cantidad resultante es <= 0 la entrada se elimina.
type ChangeCartRequest struct {
	Key   string `json:"key" validate:"required"`
	Delta int    `json:"delta" validate:"required"`
}

// CartItemResponse entrada del carrito enriquecida con datos actuales del producto.
type CartItemResponse struct {
	Key          string          `json:"key"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	ColorCode    string          `json:"color_code,omitempty"`
	BatchID      string          `json:"batch_id,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo con total.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear una posición del catálogo.
type CreateProductRequest struct {
	Title           string          `json:"title" validate:"required,min=1,max=255"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category" validate:"required,max=255"`
	Description     string          `json:"description"`
	ImagePath       string          `json:"image_path" validate:"omitempty,max=255"`
	ShelfLifeMonths int             `json:"shelf_life_months" validate:"required,min=1,max=120"`
	Nomenclature    string          `json:"nomenclature" validate:"required,min=1,max=255"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil se conservan.
type UpdateProductRequest struct {
	Title           *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Price           *decimal.Decimal `json:"price"`
	Category        *string          `json:"category" validate:"omitempty,max=255"`
	Description     *string          `json:"description"`
	ImagePath       *string          `json:"image_path" validate:"omitempty,max=255"`
	ShelfLifeMonths *int             `json:"shelf_life_months" validate:"omitempty,min=1,max=120"`
	Nomenclature    *string          `json:"nomenclature" validate:"omitempty,min=1,max=255"`
}

// UpdatePriceRequest cambio rápido de precio desde la tabla del back office.
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price" validate:"required"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	ImagePath       string          `json:"image_path"`
	ShelfLifeMonths int             `json:"shelf_life_months"`
	Nomenclature    string          `json:"nomenclature"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una posición del catálogo de pinturas y recubrimientos.
// Nomenclature es el código base del artículo; una variante de color concreta
// se denota con el sufijo RAL (ej. "PE-RAL9016" para el código base "PE").
type Product struct {
	ID              string
	Title           string
	Price           decimal.Decimal // precio de venta por unidad
	Category        string
	Description     string
	ImagePath       string
	ShelfLifeMonths int    // vida útil en meses desde la fecha de producción
	Nomenclature    string // código base de nomenclatura
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

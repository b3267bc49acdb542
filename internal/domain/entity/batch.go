package entity

import "time"

// Batch representa una partida producida de un producto: cantidad disponible,
// código de color RAL opcional y fecha de producción. La fecha de caducidad
// no se almacena; se deriva de la vida útil del producto.
type Batch struct {
	ID         string
	ProductID  string
	ColorCode  string // código RAL de 4 dígitos; vacío = sin color asignado
	Quantity   int    // unidades restantes; nunca negativo
	ProducedAt time.Time
	AnalysisID string // ID del análisis de calidad asociado; vacío = sin análisis
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExpiresAt devuelve la fecha de caducidad: fecha de producción + vida útil del producto.
func (b *Batch) ExpiresAt(shelfLifeMonths int) time.Time {
	return b.ProducedAt.AddDate(0, shelfLifeMonths, 0)
}

// Consume descuenta qty unidades de la partida, con tope en cero.
// Devuelve la cantidad realmente descontada.
func (b *Batch) Consume(qty int) int {
	if qty <= 0 {
		return 0
	}
	taken := qty
	if taken > b.Quantity {
		taken = b.Quantity
	}
	b.Quantity -= taken
	return taken
}

package entity

import "time"

// Estados del ciclo de vida de un pedido.
const (
	StatusPendingModeration = "pending_moderation"
	StatusApproved          = "approved"
	StatusCompleted         = "completed"
	StatusCancelled         = "cancelled"
)

// Order representa un pedido de compra de un usuario. Las líneas del pedido
// son inmutables una vez creadas; los cambios de estado no las alteran.
type Order struct {
	ID           string
	UserID       string
	Status       string
	CancelReason string     // motivo del rechazo; vacío salvo en cancelled
	ShipmentDate *time.Time // fecha de envío acordada; nil hasta la aprobación
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductionItem es una línea de pedido a fabricar: referencia producto y
// color sin partida concreta. Se satisface con producción nueva.
type ProductionItem struct {
	OrderID   string
	ProductID string
	ColorCode string // vacío = color base del producto
	Quantity  int
	CreatedAt time.Time
}

// StockItem es una línea de pedido servida desde una partida existente.
type StockItem struct {
	OrderID  string
	BatchID  string
	Quantity int
}

// transiciones válidas del pedido; completed y cancelled son terminales.
var orderTransitions = map[string][]string{
	StatusPendingModeration: {StatusApproved, StatusCancelled},
	StatusApproved:          {StatusCompleted, StatusCancelled},
}

// CanTransition indica si el cambio de estado from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus indica si s es uno de los estados conocidos del pedido.
func ValidStatus(s string) bool {
	switch s {
	case StatusPendingModeration, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

package entity

import (
	"strings"
	"time"
)

// MaxColorCodeLen longitud máxima de un código de color RAL clásico ("3020").
const MaxColorCodeLen = 4

// CartEntry es una posición del carrito de un usuario. Su identidad es la
// tupla (producto, color, partida-o-ausente); añadir dos veces la misma
// identidad acumula cantidad en una sola entrada.
type CartEntry struct {
	UserID    string
	ProductID string
	ColorCode string // código RAL canónico o vacío
	BatchID   string // vacío = línea a fabricar
	Quantity  int    // siempre > 0 mientras la entrada exista
	UpdatedAt time.Time
}

// Key devuelve la clave compuesta "productID|color|batchID" de la entrada.
func (e *CartEntry) Key() string {
	return CartKey(e.ProductID, e.ColorCode, e.BatchID)
}

// CartKey codifica la identidad de una entrada de carrito.
func CartKey(productID, colorCode, batchID string) string {
	return productID + "|" + colorCode + "|" + batchID
}

// ParseCartKey descompone una clave de carrito en sus tres campos de identidad.
// ok=false si la clave no tiene exactamente tres segmentos o el producto está vacío.
func ParseCartKey(key string) (productID, colorCode, batchID string, ok bool) {
	parts := strings.SplitN(key, "|", 3)
	if len(parts) != 3 || parts[0] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// NormalizeColorCode valida el código de color en la frontera de escritura del
// carrito: vacío es válido (sin color); si no, debe ser numérico de hasta
// MaxColorCodeLen dígitos. Cualquier otra forma se rechaza aquí, de modo que
// las entradas persistidas siempre tienen la forma canónica.
func NormalizeColorCode(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	// "RAL 3020" y "RAL3020" se aceptan como entrada y se reducen al código
	upper := strings.ToUpper(code)
	if strings.HasPrefix(upper, "RAL") {
		code = strings.TrimSpace(code[3:])
	}
	if code == "" {
		return "", true
	}
	if len(code) > MaxColorCodeLen {
		return "", false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return code, true
}

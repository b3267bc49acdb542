package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// CartUseCase operaciones del carrito del comprador. El carrito vive en DB,
// una fila por identidad (producto, color, partida); el color se normaliza
// aquí, en la frontera de escritura, de modo que lo persistido siempre tiene
// la forma canónica.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	log         *logger.Logger
}

// NewCartUseCase construye el caso de uso del carrito.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, batchRepo repository.BatchRepository, log *logger.Logger) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo, batchRepo: batchRepo, log: log}
}

// Add añade cantidad a la entrada con la identidad dada, creándola si no
// existe. Valida que el producto exista y, si se indica partida, que la
// partida pertenezca al producto.
func (uc *CartUseCase) Add(userID string, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	color, ok := entity.NormalizeColorCode(in.ColorCode)
	if !ok {
		return nil, domain.ErrInvalidColorCode
	}
	if _, err := uc.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	}
	if in.BatchID != "" {
		batch, err := uc.batchRepo.GetByID(in.BatchID)
		if err != nil {
			return nil, err
		}
		if batch.ProductID != in.ProductID {
			return nil, domain.ErrInvalidInput
		}
		// la entrada hereda el color de la partida
		color = batch.ColorCode
	}

	qty := in.Quantity
	existing, err := uc.cartRepo.Get(userID, in.ProductID, color, in.BatchID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		qty += existing.Quantity
	}
	entry := &entity.CartEntry{
		UserID:    userID,
		ProductID: in.ProductID,
		ColorCode: color,
		BatchID:   in.BatchID,
		Quantity:  qty,
		UpdatedAt: time.Now(),
	}
	if err := uc.cartRepo.Upsert(entry); err != nil {
		return nil, err
	}
	return uc.List(userID)
}

// Change ajusta la cantidad de una entrada por delta. Si la cantidad
// resultante es <= 0 la entrada se elimina.
func (uc *CartUseCase) Change(userID string, in dto.ChangeCartRequest) (*dto.CartResponse, error) {
	productID, color, batchID, ok := entity.ParseCartKey(in.Key)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.cartRepo.Get(userID, productID, color, batchID)
	if err != nil {
		return nil, err
	}
	newQty := existing.Quantity + in.Delta
	if newQty <= 0 {
		if err := uc.cartRepo.Delete(userID, productID, color, batchID); err != nil {
			return nil, err
		}
		return uc.List(userID)
	}
	existing.Quantity = newQty
	existing.UpdatedAt = time.Now()
	if err := uc.cartRepo.Upsert(existing); err != nil {
		return nil, err
	}
	return uc.List(userID)
}

// Remove elimina una entrada del carrito por su clave.
func (uc *CartUseCase) Remove(userID, key string) (*dto.CartResponse, error) {
	productID, color, batchID, ok := entity.ParseCartKey(key)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.cartRepo.Delete(userID, productID, color, batchID); err != nil {
		return nil, err
	}
	return uc.List(userID)
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(userID string) error {
	return uc.cartRepo.Clear(userID)
}

// List devuelve el carrito enriquecido con título y precio actual del
// producto. Las entradas cuyo producto ya no existe se omiten de la vista
// (quedan en DB hasta que el usuario las quite o haga el pedido).
func (uc *CartUseCase) List(userID string) (*dto.CartResponse, error) {
	entries, err := uc.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(entries)), Total: decimal.Zero}
	for _, e := range entries {
		product, err := uc.productRepo.GetByID(e.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.log.Warn().Str("product_id", e.ProductID).Msg("entrada de carrito con producto inexistente, se omite")
				continue
			}
			return nil, err
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		resp.Items = append(resp.Items, dto.CartItemResponse{
			Key:          e.Key(),
			ProductID:    e.ProductID,
			ProductTitle: product.Title,
			ColorCode:    e.ColorCode,
			BatchID:      e.BatchID,
			Quantity:     e.Quantity,
			UnitPrice:    product.Price,
			Subtotal:     subtotal,
		})
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp, nil
}

package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// OrderUseCase ensamblado y ciclo de vida de pedidos.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	log         *logger.Logger
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, batchRepo repository.BatchRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, productRepo: productRepo, batchRepo: batchRepo, log: log}
}

// Create convierte el carrito del usuario en un pedido pending_moderation
// dentro de una transacción: crea la cabecera, escribe las líneas (producción
// o stock), descuenta las partidas con bloqueo de fila y tope en cero, y
// vacía el carrito. Entradas cuyo producto ya no existe se omiten con aviso.
func (uc *OrderUseCase) Create(ctx context.Context, userID string) (*dto.OrderResponse, error) {
	var orderID string
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
	) error {
		entries, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now()
		ord := &entity.Order{
			ID:        uuid.New().String(),
			UserID:    userID,
			Status:    entity.StatusPendingModeration,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := orderRepo.Create(ord); err != nil {
			return err
		}

		lines := 0
		for _, e := range entries {
			if _, err := productRepo.GetByID(e.ProductID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.log.Warn().Str("product_id", e.ProductID).Str("order_id", ord.ID).
						Msg("entrada de carrito con producto inexistente, se omite del pedido")
					continue
				}
				return err
			}
			if e.BatchID != "" {
				// línea de stock: bloquea la partida y descuenta con tope en cero
				batch, err := batchRepo.GetForUpdate(e.BatchID)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						uc.log.Warn().Str("batch_id", e.BatchID).Str("order_id", ord.ID).
							Msg("entrada de carrito con partida inexistente, se omite del pedido")
						continue
					}
					return err
				}
				batch.Consume(e.Quantity)
				batch.UpdatedAt = now
				if err := batchRepo.Update(batch); err != nil {
					return err
				}
				if err := orderRepo.CreateStockItem(&entity.StockItem{
					OrderID:  ord.ID,
					BatchID:  e.BatchID,
					Quantity: e.Quantity,
				}); err != nil {
					return err
				}
			} else {
				if err := orderRepo.CreateProductionItem(&entity.ProductionItem{
					OrderID:   ord.ID,
					ProductID: e.ProductID,
					ColorCode: e.ColorCode,
					Quantity:  e.Quantity,
					CreatedAt: now,
				}); err != nil {
					return err
				}
			}
			lines++
		}
		if lines == 0 {
			// todas las entradas eran irresolubles
			return domain.ErrEmptyCart
		}

		if err := cartRepo.Clear(userID); err != nil {
			return err
		}
		orderID = ord.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("user_id", userID).Msg("pedido creado")
	return uc.Get(orderID)
}

// Get devuelve el pedido con sus líneas enriquecidas con datos actuales.
func (uc *OrderUseCase) Get(orderID string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ord)
}

// GetForUser como Get, pero valida que el pedido pertenezca al usuario.
func (uc *OrderUseCase) GetForUser(orderID, userID string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(ord)
}

// ListMine lista los pedidos del usuario (cabeceras, paginadas).
func (uc *OrderUseCase) ListMine(userID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(orders, page), nil
}

// ListAll lista pedidos de todos los usuarios, opcionalmente filtrados por estado.
func (uc *OrderUseCase) ListAll(status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.orderRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(orders, page), nil
}

// UpdateStatus modera un pedido aplicando la máquina de estados:
// pending_moderation → approved → completed, con cancelación desde los
// estados abiertos. Los estados terminales no se reabren.
func (uc *OrderUseCase) UpdateStatus(orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(ord.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	ord.Status = in.Status
	ord.UpdatedAt = time.Now()
	switch in.Status {
	case entity.StatusCancelled:
		ord.CancelReason = in.Reason
	case entity.StatusApproved:
		if in.ShipmentDate != "" {
			d, err := time.Parse("2006-01-02", in.ShipmentDate)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			ord.ShipmentDate = &d
		}
	}
	if err := uc.orderRepo.UpdateStatus(ord); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", ord.ID).Str("status", ord.Status).Msg("estado de pedido actualizado")
	return uc.toResponse(ord)
}

func (uc *OrderUseCase) toResponse(ord *entity.Order) (*dto.OrderResponse, error) {
	resp := &dto.OrderResponse{
		ID:           ord.ID,
		UserID:       ord.UserID,
		Status:       ord.Status,
		CancelReason: ord.CancelReason,
		ShipmentDate: ord.ShipmentDate,
		Items:        []dto.OrderItemResponse{},
		Total:        decimal.Zero,
		CreatedAt:    ord.CreatedAt,
		UpdatedAt:    ord.UpdatedAt,
	}

	prodItems, err := uc.orderRepo.GetProductionItems(ord.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range prodItems {
		item := dto.OrderItemResponse{
			Source:    "production",
			ProductID: it.ProductID,
			ColorCode: it.ColorCode,
			Quantity:  it.Quantity,
		}
		uc.priceLine(&item)
		resp.Items = append(resp.Items, item)
		resp.Total = resp.Total.Add(item.Subtotal)
	}

	stockItems, err := uc.orderRepo.GetStockItems(ord.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range stockItems {
		item := dto.OrderItemResponse{
			Source:   "stock",
			BatchID:  it.BatchID,
			Quantity: it.Quantity,
		}
		if batch, err := uc.batchRepo.GetByID(it.BatchID); err == nil {
			item.ProductID = batch.ProductID
			item.ColorCode = batch.ColorCode
		}
		uc.priceLine(&item)
		resp.Items = append(resp.Items, item)
		resp.Total = resp.Total.Add(item.Subtotal)
	}
	return resp, nil
}

// priceLine rellena título y precios de la línea; si el producto ya no existe
// la línea se muestra sin precio.
func (uc *OrderUseCase) priceLine(item *dto.OrderItemResponse) {
	item.UnitPrice = decimal.Zero
	item.Subtotal = decimal.Zero
	if item.ProductID == "" {
		return
	}
	product, err := uc.productRepo.GetByID(item.ProductID)
	if err != nil {
		return
	}
	item.ProductTitle = product.Title
	item.UnitPrice = product.Price
	item.Subtotal = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func toListResponse(orders []*entity.Order, page dto.PageRequest) *dto.OrderListResponse {
	resp := &dto.OrderListResponse{
		Items: make([]dto.OrderSummaryResponse, 0, len(orders)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range orders {
		resp.Items = append(resp.Items, dto.OrderSummaryResponse{
			ID:           o.ID,
			UserID:       o.UserID,
			Status:       o.Status,
			CancelReason: o.CancelReason,
			ShipmentDate: o.ShipmentDate,
			CreatedAt:    o.CreatedAt,
		})
	}
	return resp
}

package document

import (
	"fmt"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/order"
	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

// DocumentUseCase genera los PDF asociados a un pedido: factura proforma y
// albarán de entrega. El albarán solo está disponible para pedidos aprobados
// o completados.
type DocumentUseCase struct {
	orderUC   *order.OrderUseCase
	userRepo  repository.UserRepository
	generator ports.DocumentGenerator
}

// NewDocumentUseCase construye el caso de uso de documentos.
func NewDocumentUseCase(orderUC *order.OrderUseCase, userRepo repository.UserRepository, generator ports.DocumentGenerator) *DocumentUseCase {
	return &DocumentUseCase{orderUC: orderUC, userRepo: userRepo, generator: generator}
}

// Invoice genera la factura proforma del pedido. requesterID limita el acceso:
// vacío = back office, si no debe ser el dueño del pedido.
func (uc *DocumentUseCase) Invoice(orderID, requesterID string) ([]byte, error) {
	data, _, err := uc.buildData(orderID, requesterID)
	if err != nil {
		return nil, err
	}
	return uc.generator.Invoice(*data)
}

// DeliveryNote genera el albarán de entrega. Solo para pedidos aprobados o completados.
func (uc *DocumentUseCase) DeliveryNote(orderID, requesterID string) ([]byte, error) {
	data, status, err := uc.buildData(orderID, requesterID)
	if err != nil {
		return nil, err
	}
	if status != entity.StatusApproved && status != entity.StatusCompleted {
		return nil, domain.ErrConflict
	}
	return uc.generator.DeliveryNote(*data)
}

func (uc *DocumentUseCase) buildData(orderID, requesterID string) (*ports.OrderDocumentData, string, error) {
	var (
		ord *dto.OrderResponse
		err error
	)
	if requesterID == "" {
		ord, err = uc.orderUC.Get(orderID)
	} else {
		ord, err = uc.orderUC.GetForUser(orderID, requesterID)
	}
	if err != nil {
		return nil, "", err
	}

	customer, err := uc.userRepo.GetByID(ord.UserID)
	if err != nil {
		return nil, "", err
	}

	data := &ports.OrderDocumentData{
		OrderID:      ord.ID,
		OrderDate:    ord.CreatedAt.Format("02.01.2006"),
		Status:       ord.Status,
		CustomerName: customer.FullName,
		CompanyName:  customer.CompanyName,
		TaxID:        customer.TaxID,
		Total:        ord.Total.StringFixed(2),
	}
	for _, it := range ord.Items {
		title := it.ProductTitle
		if title == "" {
			title = fmt.Sprintf("producto %s", it.ProductID)
		}
		data.Lines = append(data.Lines, ports.DocumentLine{
			Title:     title,
			ColorCode: it.ColorCode,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Subtotal:  it.Subtotal.StringFixed(2),
		})
	}
	return data, ord.Status, nil
}

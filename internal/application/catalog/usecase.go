package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// CatalogUseCase gestión del catálogo de productos. La lectura es pública;
// crear, editar y borrar requieren rol manager o admin.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCatalogUseCase construye el caso de uso del catálogo.
func NewCatalogUseCase(productRepo repository.ProductRepository, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, log: log}
}

// Create da de alta una posición del catálogo. La nomenclatura es única.
func (uc *CatalogUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.productRepo.GetByNomenclature(in.Nomenclature)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Title:           in.Title,
		Price:           in.Price,
		Category:        in.Category,
		Description:     in.Description,
		ImagePath:       in.ImagePath,
		ShelfLifeMonths: in.ShelfLifeMonths,
		Nomenclature:    in.Nomenclature,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("nomenclature", product.Nomenclature).Msg("producto creado")
	return ToProductResponse(product), nil
}

// Get devuelve un producto por ID.
func (uc *CatalogUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List devuelve productos filtrados por categoría (vacía = todas), paginados.
func (uc *CatalogUseCase) List(category string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List(category, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		resp.Items = append(resp.Items, *ToProductResponse(p))
	}
	return resp, nil
}

// Update aplica los campos no nulos de la petición.
func (uc *CatalogUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImagePath != nil {
		product.ImagePath = *in.ImagePath
	}
	if in.ShelfLifeMonths != nil {
		product.ShelfLifeMonths = *in.ShelfLifeMonths
	}
	if in.Nomenclature != nil {
		product.Nomenclature = *in.Nomenclature
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// UpdatePrice cambio rápido de precio sin tocar el resto de campos.
func (uc *CatalogUseCase) UpdatePrice(id string, in dto.UpdatePriceRequest) (*dto.ProductResponse, error) {
	if err := uc.productRepo.UpdatePrice(id, in.Price); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Str("price", in.Price.String()).Msg("precio actualizado")
	return ToProductResponse(product), nil
}

// Delete elimina un producto del catálogo.
func (uc *CatalogUseCase) Delete(id string) error {
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// ToProductResponse convierte la entidad a DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		Price:           p.Price,
		Category:        p.Category,
		Description:     p.Description,
		ImagePath:       p.ImagePath,
		ShelfLifeMonths: p.ShelfLifeMonths,
		Nomenclature:    p.Nomenclature,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

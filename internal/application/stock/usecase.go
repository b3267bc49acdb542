package stock

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

const dateLayout = "02.01.2006"

// StockUseCase gestión de partidas de producción y sus análisis de calidad.
type StockUseCase struct {
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	analysisRepo repository.AnalysisRepository
	log          *logger.Logger
}

// NewStockUseCase construye el caso de uso de stock.
func NewStockUseCase(batchRepo repository.BatchRepository, productRepo repository.ProductRepository, analysisRepo repository.AnalysisRepository, log *logger.Logger) *StockUseCase {
	return &StockUseCase{batchRepo: batchRepo, productRepo: productRepo, analysisRepo: analysisRepo, log: log}
}

// CreateBatch registra una partida producida. El color se normaliza a la
// forma canónica; fecha de producción vacía = hoy.
func (uc *StockUseCase) CreateBatch(in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	color, ok := entity.NormalizeColorCode(in.ColorCode)
	if !ok {
		return nil, domain.ErrInvalidColorCode
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}

	produced := time.Now()
	if in.ProducedAt != "" {
		produced, err = time.Parse("2006-01-02", in.ProducedAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		ColorCode:  color,
		Quantity:   in.Quantity,
		ProducedAt: produced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	uc.log.Info().Str("batch_id", batch.ID).Str("product_id", batch.ProductID).Int("quantity", batch.Quantity).Msg("partida registrada")
	return uc.toBatchResponse(batch, product), nil
}

// AdjustBatch corrige la cantidad restante de una partida (recuento físico).
func (uc *StockUseCase) AdjustBatch(batchID string, in dto.AdjustBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	batch.Quantity = in.Quantity
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(batch.ProductID)
	if err != nil {
		return nil, err
	}
	return uc.toBatchResponse(batch, product), nil
}

// DeleteBatch elimina una partida y su análisis asociado.
func (uc *StockUseCase) DeleteBatch(batchID string) error {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return err
	}
	if batch.AnalysisID != "" {
		if err := uc.analysisRepo.Delete(batch.AnalysisID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}
	return uc.batchRepo.Delete(batchID)
}

// ListAvailable devuelve las partidas con existencias para la vista de compra,
// agrupadas por nomenclatura+color y ordenadas por fecha de producción
// ascendente dentro de cada grupo (las más antiguas se venden primero).
func (uc *StockUseCase) ListAvailable() (*dto.BatchListResponse, error) {
	batches, err := uc.batchRepo.ListAvailable()
	if err != nil {
		return nil, err
	}
	return uc.toBatchList(batches)
}

// ListForProduct devuelve las partidas disponibles de un producto concreto,
// para el selector de partida en la ficha del catálogo.
func (uc *StockUseCase) ListForProduct(productID string) (*dto.BatchListResponse, error) {
	batches, err := uc.batchRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	available := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.Quantity > 0 {
			available = append(available, b)
		}
	}
	return uc.toBatchList(available)
}

// ListAll incluye partidas agotadas (vista de administración).
func (uc *StockUseCase) ListAll() (*dto.BatchListResponse, error) {
	batches, err := uc.batchRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return uc.toBatchList(batches)
}

func (uc *StockUseCase) toBatchList(batches []*entity.Batch) (*dto.BatchListResponse, error) {
	resp := &dto.BatchListResponse{Items: make([]dto.BatchResponse, 0, len(batches))}
	products := map[string]*entity.Product{}
	for _, b := range batches {
		product, ok := products[b.ProductID]
		if !ok {
			var err error
			product, err = uc.productRepo.GetByID(b.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.log.Warn().Str("batch_id", b.ID).Str("product_id", b.ProductID).Msg("partida con producto inexistente, se omite del listado")
					continue
				}
				return nil, err
			}
			products[b.ProductID] = product
		}
		resp.Items = append(resp.Items, *uc.toBatchResponse(b, product))
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		a, b := resp.Items[i], resp.Items[j]
		if a.Nomenclature != b.Nomenclature {
			return a.Nomenclature < b.Nomenclature
		}
		return a.ProducedAt.Before(b.ProducedAt)
	})
	return resp, nil
}

// UpsertAnalysis crea o actualiza el análisis de calidad de una partida.
// Los campos nil de la petición conservan la medición existente.
func (uc *StockUseCase) UpsertAnalysis(batchID string, in dto.UpsertAnalysisRequest) (*dto.AnalysisResponse, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	analysis, err := uc.analysisRepo.GetByBatch(batchID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		analysis = &entity.Analysis{ID: uuid.New().String(), BatchID: batchID, CreatedAt: now}
	}

	applyFloat := func(dst **float64, src *float64) {
		if src != nil {
			*dst = src
		}
	}
	applyFloat(&analysis.Gloss, in.Gloss)
	applyFloat(&analysis.Viscosity, in.Viscosity)
	applyFloat(&analysis.DeltaE, in.DeltaE)
	applyFloat(&analysis.DeltaL, in.DeltaL)
	applyFloat(&analysis.DeltaA, in.DeltaA)
	applyFloat(&analysis.DeltaB, in.DeltaB)
	applyFloat(&analysis.DryingTime, in.DryingTime)
	applyFloat(&analysis.PeakMetalTemperature, in.PeakMetalTemperature)
	applyFloat(&analysis.SoilThickness, in.SoilThickness)
	applyFloat(&analysis.Adhesion, in.Adhesion)
	applyFloat(&analysis.SolventResistance, in.SolventResistance)
	applyFloat(&analysis.GrindingDegree, in.GrindingDegree)
	applyFloat(&analysis.SolidsByVolume, in.SolidsByVolume)
	applyFloat(&analysis.GroundContent, in.GroundContent)
	applyFloat(&analysis.MassFraction, in.MassFraction)
	if in.SampleCount != nil {
		analysis.SampleCount = in.SampleCount
	}
	if in.VisualControl != nil {
		analysis.VisualControl = *in.VisualControl
	}
	if in.Appearance != nil {
		analysis.Appearance = *in.Appearance
	}
	analysis.UpdatedAt = now

	if err := uc.analysisRepo.Upsert(analysis); err != nil {
		return nil, err
	}
	if batch.AnalysisID != analysis.ID {
		batch.AnalysisID = analysis.ID
		batch.UpdatedAt = now
		if err := uc.batchRepo.Update(batch); err != nil {
			return nil, err
		}
	}
	return toAnalysisResponse(analysis), nil
}

// GetAnalysis devuelve el análisis de una partida.
func (uc *StockUseCase) GetAnalysis(batchID string) (*dto.AnalysisResponse, error) {
	analysis, err := uc.analysisRepo.GetByBatch(batchID)
	if err != nil {
		return nil, err
	}
	return toAnalysisResponse(analysis), nil
}

// Nomenclature compone el código de nomenclatura de la variante: código base
// del producto más el sufijo RAL cuando la partida tiene color.
func Nomenclature(base, colorCode string) string {
	if colorCode == "" {
		return base
	}
	return base + "-RAL" + colorCode
}

func (uc *StockUseCase) toBatchResponse(b *entity.Batch, p *entity.Product) *dto.BatchResponse {
	nom := Nomenclature(p.Nomenclature, b.ColorCode)
	expires := b.ExpiresAt(p.ShelfLifeMonths)
	return &dto.BatchResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		ProductTitle: p.Title,
		Nomenclature: nom,
		ColorCode:    b.ColorCode,
		Quantity:     b.Quantity,
		ProducedAt:   b.ProducedAt,
		ExpiresAt:    expires,
		Label: fmt.Sprintf("%s · partida %s · prod. %s · cad. %s",
			nom, b.ID, b.ProducedAt.Format(dateLayout), expires.Format(dateLayout)),
		HasAnalysis: b.AnalysisID != "",
	}
}

func toAnalysisResponse(a *entity.Analysis) *dto.AnalysisResponse {
	return &dto.AnalysisResponse{
		ID:                   a.ID,
		BatchID:              a.BatchID,
		Gloss:                a.Gloss,
		Viscosity:            a.Viscosity,
		DeltaE:               a.DeltaE,
		DeltaL:               a.DeltaL,
		DeltaA:               a.DeltaA,
		DeltaB:               a.DeltaB,
		DryingTime:           a.DryingTime,
		PeakMetalTemperature: a.PeakMetalTemperature,
		SoilThickness:        a.SoilThickness,
		Adhesion:             a.Adhesion,
		SolventResistance:    a.SolventResistance,
		GrindingDegree:       a.GrindingDegree,
		SolidsByVolume:       a.SolidsByVolume,
		GroundContent:        a.GroundContent,
		MassFraction:         a.MassFraction,
		SampleCount:          a.SampleCount,
		VisualControl:        a.VisualControl,
		Appearance:           a.Appearance,
	}
}

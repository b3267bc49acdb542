package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/stock"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo { return &fakeBatchRepo{batches: map[string]*entity.Batch{}} }

func (f *fakeBatchRepo) Create(b *entity.Batch) error {
	cp := *b
	f.batches[b.ID] = &cp
	return nil
}
func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}
func (f *fakeBatchRepo) GetForUpdate(id string) (*entity.Batch, error) { return f.GetByID(id) }
func (f *fakeBatchRepo) Update(b *entity.Batch) error {
	cp := *b
	f.batches[b.ID] = &cp
	return nil
}
func (f *fakeBatchRepo) ListAvailable() ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.batches {
		if b.Quantity > 0 {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeBatchRepo) ListAll() ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.batches {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeBatchRepo) ListByProduct(string) ([]*entity.Batch, error) { return nil, nil }
func (f *fakeBatchRepo) Delete(id string) error {
	delete(f.batches, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (f *fakeProductRepo) GetByNomenclature(string) (*entity.Product, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeProductRepo) Update(*entity.Product) error                     { return nil }
func (f *fakeProductRepo) UpdatePrice(string, decimal.Decimal) error        { return nil }
func (f *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(string) error                              { return nil }

type fakeAnalysisRepo struct {
	byBatch map[string]*entity.Analysis
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{byBatch: map[string]*entity.Analysis{}}
}

func (f *fakeAnalysisRepo) Upsert(a *entity.Analysis) error {
	cp := *a
	f.byBatch[a.BatchID] = &cp
	return nil
}
func (f *fakeAnalysisRepo) GetByBatch(batchID string) (*entity.Analysis, error) {
	a, ok := f.byBatch[batchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
func (f *fakeAnalysisRepo) Delete(id string) error {
	for k, a := range f.byBatch {
		if a.ID == id {
			delete(f.byBatch, k)
		}
	}
	return nil
}

func newStockUseCase() (*stock.StockUseCase, *fakeBatchRepo, *fakeAnalysisRepo) {
	batches := newFakeBatchRepo()
	analyses := newFakeAnalysisRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Title: "Esmalte PE", Nomenclature: "PE", ShelfLifeMonths: 12},
		"p2": {ID: "p2", Title: "Imprimación EP", Nomenclature: "EP", ShelfLifeMonths: 6},
	}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return stock.NewStockUseCase(batches, products, analyses, log), batches, analyses
}

func TestNomenclature(t *testing.T) {
	assert.Equal(t, "PE-RAL9016", stock.Nomenclature("PE", "9016"))
	assert.Equal(t, "PE", stock.Nomenclature("PE", ""))
}

func TestCreateBatch_EtiquetaYCaducidad(t *testing.T) {
	uc, _, _ := newStockUseCase()

	resp, err := uc.CreateBatch(dto.CreateBatchRequest{
		ProductID: "p1", ColorCode: "RAL 9016", Quantity: 50, ProducedAt: "2026-03-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "9016", resp.ColorCode)
	assert.Equal(t, "PE-RAL9016", resp.Nomenclature)
	assert.Equal(t, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), resp.ExpiresAt)
	assert.Contains(t, resp.Label, "PE-RAL9016")
	assert.Contains(t, resp.Label, "prod. 15.03.2026")
	assert.Contains(t, resp.Label, "cad. 15.03.2027")
}

func TestCreateBatch_ColorInvalido(t *testing.T) {
	uc, _, _ := newStockUseCase()
	_, err := uc.CreateBatch(dto.CreateBatchRequest{ProductID: "p1", ColorCode: "blanco", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidColorCode)
}

func TestListAvailable_AgrupaYOrdenaPorFecha(t *testing.T) {
	uc, batches, _ := newStockUseCase()

	mk := func(id, productID, color string, qty int, produced string) {
		d, _ := time.Parse("2006-01-02", produced)
		batches.batches[id] = &entity.Batch{ID: id, ProductID: productID, ColorCode: color, Quantity: qty, ProducedAt: d}
	}
	mk("b-nuevo", "p1", "9016", 10, "2026-06-01")
	mk("b-viejo", "p1", "9016", 5, "2026-01-01")
	mk("b-ep", "p2", "", 8, "2026-03-01")
	mk("b-agotado", "p1", "9016", 0, "2025-12-01")

	resp, err := uc.ListAvailable()
	require.NoError(t, err)

	// EP < PE-RAL9016; dentro del grupo, producción ascendente; sin agotados
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "b-ep", resp.Items[0].ID)
	assert.Equal(t, "b-viejo", resp.Items[1].ID)
	assert.Equal(t, "b-nuevo", resp.Items[2].ID)
}

func TestUpsertAnalysis_CreaYActualizaParcial(t *testing.T) {
	uc, batches, _ := newStockUseCase()
	batches.batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p1", Quantity: 10}

	gloss := 85.0
	visc := 120.0
	resp, err := uc.UpsertAnalysis("b1", dto.UpsertAnalysisRequest{Gloss: &gloss, Viscosity: &visc})
	require.NoError(t, err)
	require.NotNil(t, resp.Gloss)
	assert.Equal(t, 85.0, *resp.Gloss)

	// la partida queda enlazada al análisis
	b, _ := batches.GetByID("b1")
	assert.Equal(t, resp.ID, b.AnalysisID)

	// actualización parcial: Gloss cambia, Viscosity se conserva
	gloss2 := 90.0
	resp2, err := uc.UpsertAnalysis("b1", dto.UpsertAnalysisRequest{Gloss: &gloss2})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, resp2.ID)
	assert.Equal(t, 90.0, *resp2.Gloss)
	require.NotNil(t, resp2.Viscosity)
	assert.Equal(t, 120.0, *resp2.Viscosity)
}

func TestDeleteBatch_EliminaAnalisisAsociado(t *testing.T) {
	uc, batches, analyses := newStockUseCase()
	batches.batches["b1"] = &entity.Batch{ID: "b1", ProductID: "p1", Quantity: 10}

	gloss := 85.0
	_, err := uc.UpsertAnalysis("b1", dto.UpsertAnalysisRequest{Gloss: &gloss})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteBatch("b1"))
	_, err = batches.GetByID("b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = analyses.GetByBatch("b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

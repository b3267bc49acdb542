package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/application/cart"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// fakes en memoria de los repos que usa el carrito.

type fakeCartRepo struct {
	entries map[string]*entity.CartEntry // clave: userID + "#" + Key()
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{entries: map[string]*entity.CartEntry{}}
}

func (f *fakeCartRepo) key(userID, productID, color, batchID string) string {
	return userID + "#" + entity.CartKey(productID, color, batchID)
}

func (f *fakeCartRepo) Upsert(e *entity.CartEntry) error {
	cp := *e
	f.entries[f.key(e.UserID, e.ProductID, e.ColorCode, e.BatchID)] = &cp
	return nil
}

func (f *fakeCartRepo) Get(userID, productID, color, batchID string) (*entity.CartEntry, error) {
	e, ok := f.entries[f.key(userID, productID, color, batchID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeCartRepo) ListByUser(userID string) ([]*entity.CartEntry, error) {
	var out []*entity.CartEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) Delete(userID, productID, color, batchID string) error {
	delete(f.entries, f.key(userID, productID, color, batchID))
	return nil
}

func (f *fakeCartRepo) Clear(userID string) error {
	for k, e := range f.entries {
		if e.UserID == userID {
			delete(f.entries, k)
		}
	}
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
func (f *fakeProductRepo) Update(*entity.Product) error                 { return nil }
func (f *fakeProductRepo) UpdatePrice(string, decimal.Decimal) error    { return nil }
func (f *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(string) error                          { return nil }

type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func (f *fakeBatchRepo) Create(*entity.Batch) error { return nil }
func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
func (f *fakeBatchRepo) GetForUpdate(id string) (*entity.Batch, error) { return f.GetByID(id) }
func (f *fakeBatchRepo) Update(*entity.Batch) error                    { return nil }
func (f *fakeBatchRepo) ListAvailable() ([]*entity.Batch, error)       { return nil, nil }
func (f *fakeBatchRepo) ListAll() ([]*entity.Batch, error)             { return nil, nil }
func (f *fakeBatchRepo) ListByProduct(string) ([]*entity.Batch, error) { return nil, nil }
func (f *fakeBatchRepo) Delete(string) error                           { return nil }

func newCartUseCase() (*cart.CartUseCase, *fakeCartRepo) {
	cartRepo := newFakeCartRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Title: "Esmalte PE", Price: decimal.NewFromInt(150)},
		"p2": {ID: "p2", Title: "Imprimación EP", Price: decimal.NewFromFloat(99.50)},
	}}
	batches := &fakeBatchRepo{batches: map[string]*entity.Batch{
		"b1": {ID: "b1", ProductID: "p1", ColorCode: "9016", Quantity: 20},
	}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return cart.NewCartUseCase(cartRepo, products, batches, log), cartRepo
}

func TestAdd_AcumulaMismaIdentidad(t *testing.T) {
	uc, _ := newCartUseCase()

	_, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 2, ColorCode: "RAL 3020"})
	require.NoError(t, err)
	resp, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 3, ColorCode: "3020"})
	require.NoError(t, err)

	// "RAL 3020" y "3020" son la misma identidad: una sola entrada con 5 uds.
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, "3020", resp.Items[0].ColorCode)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(750)))
}

func TestAdd_ColoresDistintosSonEntradasDistintas(t *testing.T) {
	uc, _ := newCartUseCase()

	_, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 1, ColorCode: "3020"})
	require.NoError(t, err)
	resp, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 1, ColorCode: "9016"})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
}

func TestAdd_ColorInvalidoSeRechaza(t *testing.T) {
	uc, _ := newCartUseCase()

	_, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 1, ColorCode: "rojo señales"})
	assert.ErrorIs(t, err, domain.ErrInvalidColorCode)

	_, err = uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 1, ColorCode: "30201"})
	assert.ErrorIs(t, err, domain.ErrInvalidColorCode)
}

func TestAdd_LineaDePartidaHeredaColor(t *testing.T) {
	uc, _ := newCartUseCase()

	resp, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 4, BatchID: "b1"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "9016", resp.Items[0].ColorCode)
	assert.Equal(t, "b1", resp.Items[0].BatchID)
}

func TestAdd_PartidaDeOtroProducto(t *testing.T) {
	uc, _ := newCartUseCase()

	_, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p2", Quantity: 1, BatchID: "b1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChange_DeltaNegativoHastaEliminar(t *testing.T) {
	uc, _ := newCartUseCase()

	resp, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	key := resp.Items[0].Key

	resp, err = uc.Change("u1", dto.ChangeCartRequest{Key: key, Delta: -2})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)

	// bajar a cero elimina la entrada
	resp, err = uc.Change("u1", dto.ChangeCartRequest{Key: key, Delta: -1})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestChange_EntradaInexistente(t *testing.T) {
	uc, _ := newCartUseCase()

	_, err := uc.Change("u1", dto.ChangeCartRequest{Key: entity.CartKey("p1", "", ""), Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_OmiteProductosEliminados(t *testing.T) {
	uc, cartRepo := newCartUseCase()

	_, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	// entrada huérfana escrita directamente en el repo
	require.NoError(t, cartRepo.Upsert(&entity.CartEntry{
		UserID: "u1", ProductID: "desaparecido", Quantity: 2,
	}))

	resp, err := uc.List("u1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ProductID)
}

func TestClear(t *testing.T) {
	uc, _ := newCartUseCase()

	_, err := uc.Add("u1", dto.AddToCartRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, uc.Clear("u1"))

	resp, err := uc.List("u1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pinturas-b2b/internal/application/auth"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{byEmail: map[string]*entity.User{}} }

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}
func (f *fakeUserRepo) GetByID(string) (*entity.User, error) { return nil, domain.ErrUserNotFound }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
func (f *fakeUserRepo) Update(*entity.User) error                 { return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error)     { return nil, nil }
func (f *fakeUserRepo) ListByRole(string) ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Delete(string) error                       { return nil }

type stubLookup struct {
	info *ports.CompanyInfo
	err  error
}

func (s *stubLookup) FindByTaxID(context.Context, string) (*ports.CompanyInfo, error) {
	return s.info, s.err
}

func testJWT() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "pinturas-b2b"}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func TestRegister_VerificacionConfirmada(t *testing.T) {
	repo := newFakeUserRepo()
	lookup := &stubLookup{info: &ports.CompanyInfo{Name: "OOO Pinturas del Norte", TaxID: "7712345678"}}
	uc := auth.NewAuthUseCase(repo, lookup, testJWT(), testLogger())

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "comprador@empresa.ru", Password: "contraseña1", FullName: "Iván Petrov", TaxID: "7712345678",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleBuyer, resp.Role)
	assert.True(t, resp.CompanyVerified)
	// el nombre oficial de la contraparte prevalece sobre el introducido
	assert.Equal(t, "OOO Pinturas del Norte", resp.CompanyName)
}

func TestRegister_VerificacionCaidaNoBloquea(t *testing.T) {
	repo := newFakeUserRepo()
	lookup := &stubLookup{err: ports.ErrLookupRateLimited}
	uc := auth.NewAuthUseCase(repo, lookup, testJWT(), testLogger())

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "comprador@empresa.ru", Password: "contraseña1", FullName: "Iván Petrov",
		TaxID: "7712345678", CompanyName: "Mi Empresa",
	})
	require.NoError(t, err)
	assert.False(t, resp.CompanyVerified)
	assert.Equal(t, "Mi Empresa", resp.CompanyName)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, nil, testJWT(), testLogger())

	in := dto.RegisterRequest{Email: "a@b.ru", Password: "contraseña1", FullName: "A", TaxID: "7712345678"}
	_, err := uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesValidasEInvalidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, nil, testJWT(), testLogger())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.ru", Password: "contraseña1", FullName: "A", TaxID: "7712345678",
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "a@b.ru", Password: "contraseña1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@b.ru", resp.User.Email)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.ru", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@b.ru", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLookupCompany_Encontrada(t *testing.T) {
	lookup := &stubLookup{info: &ports.CompanyInfo{
		Name: "OOO Pinturas del Norte", TaxID: "7712345678", KPP: "771201001", Management: "Ivanov Ivan",
	}}
	uc := auth.NewAuthUseCase(newFakeUserRepo(), lookup, testJWT(), testLogger())

	info, err := uc.LookupCompany(context.Background(), "7712345678")
	require.NoError(t, err)
	assert.Equal(t, "OOO Pinturas del Norte", info.Name)
	assert.Equal(t, "771201001", info.KPP)
	assert.Equal(t, "Ivanov Ivan", info.Management)
}

func TestLookupCompany_NoEncontrada(t *testing.T) {
	lookup := &stubLookup{err: ports.ErrCompanyNotFound}
	uc := auth.NewAuthUseCase(newFakeUserRepo(), lookup, testJWT(), testLogger())

	_, err := uc.LookupCompany(context.Background(), "0000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupCompany_SinServicio(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), nil, testJWT(), testLogger())

	_, err := uc.LookupCompany(context.Background(), "7712345678")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/jwt"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
// La verificación de la contraparte por INN es best-effort: si el servicio
// de verificación falla el registro sigue adelante con CompanyVerified=false.
type AuthUseCase struct {
	userRepo repository.UserRepository
	lookup   ports.CompanyLookupService
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. lookup puede ser nil
// (sin token de verificación configurado).
func NewAuthUseCase(userRepo repository.UserRepository, lookup ports.CompanyLookupService, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, lookup: lookup, jwtCfg: jwtCfg, log: log}
}

// Register crea un comprador: hashea password con bcrypt, intenta verificar el
// INN contra el registro de contrapartes y persiste. Devuelve
// ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	companyName := in.CompanyName
	verified := false
	if uc.lookup != nil {
		info, lookupErr := uc.lookup.FindByTaxID(ctx, in.TaxID)
		switch {
		case lookupErr == nil:
			verified = true
			if info.Name != "" {
				companyName = info.Name
			}
		case errors.Is(lookupErr, ports.ErrCompanyNotFound):
			uc.log.Warn().Str("tax_id", in.TaxID).Msg("INN no encontrado en el registro de contrapartes")
		default:
			// el registro no se bloquea por fallos del servicio externo
			uc.log.Warn().Err(lookupErr).Msg("verificación de contraparte no disponible")
		}
	}

	now := time.Now()
	user := &entity.User{
		ID:              uuid.New().String(),
		Email:           in.Email,
		FullName:        in.FullName,
		TaxID:           in.TaxID,
		CompanyName:     companyName,
		Phone:           in.Phone,
		PasswordHash:    string(hash),
		Role:            entity.RoleBuyer,
		CompanyVerified: verified,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// LookupCompany consulta el registro de contrapartes por INN, para que el
// formulario de registro pueda autocompletar la razón social. Devuelve
// ErrNotFound si el INN no existe y ErrConflict si la verificación no está
// configurada.
func (uc *AuthUseCase) LookupCompany(ctx context.Context, taxID string) (*dto.CompanyInfoDTO, error) {
	if uc.lookup == nil {
		return nil, domain.ErrConflict
	}
	info, err := uc.lookup.FindByTaxID(ctx, taxID)
	if err != nil {
		if errors.Is(err, ports.ErrCompanyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &dto.CompanyInfoDTO{
		Name:       info.Name,
		Address:    info.Address,
		TaxID:      info.TaxID,
		KPP:        info.KPP,
		OGRN:       info.OGRN,
		Management: info.Management,
	}, nil
}

// ToUserResponse convierte la entidad a DTO de salida (sin el hash de password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		TaxID:           u.TaxID,
		CompanyName:     u.CompanyName,
		Phone:           u.Phone,
		Role:            u.Role,
		CompanyVerified: u.CompanyVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

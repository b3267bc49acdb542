package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pinturas-b2b/internal/application/auth"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
)

// UserUseCase administración de cuentas (solo admin).
type UserUseCase struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso de administración de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, log: log}
}

// Get devuelve un usuario por ID.
func (uc *UserUseCase) Get(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve usuarios paginados, opcionalmente filtrados por rol.
func (uc *UserUseCase) List(role string, page dto.PageRequest) (*dto.UserListResponse, error) {
	var (
		list []*entity.User
		err  error
	)
	if role != "" {
		list, err = uc.userRepo.ListByRole(role)
	} else {
		list, err = uc.userRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, u := range list {
		resp.Items = append(resp.Items, *auth.ToUserResponse(u))
	}
	return resp, nil
}

// Update aplica los campos no nulos: datos de contacto, rol y password.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.CompanyName != nil {
		user.CompanyName = *in.CompanyName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario actualizado")
	return auth.ToUserResponse(user), nil
}

// UpdateProfile aplica los campos no nulos del propio perfil. El rol no se toca.
func (uc *UserUseCase) UpdateProfile(id string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return uc.Update(id, dto.UpdateUserRequest{
		FullName:    in.FullName,
		CompanyName: in.CompanyName,
		Phone:       in.Phone,
		Password:    in.Password,
	})
}

// Delete elimina una cuenta. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(id, actorID string) error {
	if id == actorID {
		return domain.ErrConflict
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return nil
}

package dto

import "time"

// RegisterRequest entrada para registro (auth). El INN se verifica contra
// DaData si hay token configurado; password se hashea en el use case.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=1,max=200"`
	TaxID       string `json:"tax_id" validate:"required,numeric,min=10,max=12"`
	CompanyName string `json:"company_name" validate:"omitempty,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=16"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	TaxID           string    `json:"tax_id"`
	CompanyName     string    `json:"company_name"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	CompanyVerified bool      `json:"company_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpdateUserRequest entrada para que el admin edite un usuario.
// Los campos nil se dejan como están.
type UpdateUserRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=16"`
	Role        *string `json:"role" validate:"omitempty,oneof=buyer manager admin"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateProfileRequest entrada para que el usuario edite su propio perfil.
// No permite cambiar el rol.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=16"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

// CompanyInfoDTO datos de la contraparte devueltos por la verificación de INN.
type CompanyInfoDTO struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	TaxID      string `json:"tax_id"` // INN
	KPP        string `json:"kpp"`
	OGRN       string `json:"ogrn"`
	Management string `json:"management,omitempty"`
}

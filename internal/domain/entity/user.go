package entity

import "time"

// Roles válidos para User.
const (
	RoleBuyer   = "buyer"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User representa una cuenta del portal B2B: comprador de una empresa cliente,
// gestor comercial o administrador.
type User struct {
	ID              string
	Email           string // login, único
	FullName        string
	TaxID           string // INN de la empresa (10 o 12 dígitos)
	CompanyName     string
	Phone           string
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	Role            string // buyer, manager, admin
	CompanyVerified bool   // true si la contraparte fue confirmada vía DaData
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

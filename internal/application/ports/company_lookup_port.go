package ports

import (
	"context"
	"errors"
)

var (
	// ErrCompanyNotFound el INN no corresponde a ninguna organización registrada.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrLookupUnauthorized el token del servicio de verificación no es válido.
	ErrLookupUnauthorized = errors.New("company lookup unauthorized")
	// ErrLookupRateLimited el servicio de verificación limitó las peticiones.
	ErrLookupRateLimited = errors.New("company lookup rate limited")
)

// CompanyInfo datos básicos de la organización encontrada.
type CompanyInfo struct {
	Name       string
	Address    string
	TaxID      string
	KPP        string
	OGRN       string
	Management string // nombre del representante legal
}

// CompanyLookupService verifica un INN contra el registro de contrapartes.
type CompanyLookupService interface {
	FindByTaxID(ctx context.Context, taxID string) (*CompanyInfo, error)
}

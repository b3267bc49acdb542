package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/auth"
	"github.com/tu-usuario/pinturas-b2b/internal/application/dto"
)

// AuthHandler maneja registro y login (rutas públicas).
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar comprador
// @Description  Crea la cuenta y verifica el INN contra el registro de contrapartes (best-effort).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos de registro"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VerifyCompany godoc
// @Summary      Consultar contraparte por INN
// @Description  Autocompletado del formulario de registro contra el registro de contrapartes.
// @Tags         auth
// @Produce      json
// @Param        tax_id  query  string  true  "INN de la organización"
// @Success      200  {object}  dto.CompanyInfoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/company [get]
func (h *AuthHandler) VerifyCompany(c *fiber.Ctx) error {
	taxID := c.Query("tax_id")
	if taxID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tax_id es requerido"})
	}
	out, err := h.uc.LookupCompany(c.Context(), taxID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/auth"
	"github.com/jhoicas/erp-kardex/internal/application/dto"
)

// AuthHandler maneja login y alta de empresas.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// LoginAdmin godoc
// @Summary      Login de administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username o email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /login/auth [post]
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.LoginAdmin(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// LoginEmployee godoc
// @Summary      Login de empleado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username o email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /login/auth-employee [post]
func (h *AuthHandler) LoginEmployee(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.LoginEmployee(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateCompany godoc
// @Summary      Crear empresa y su administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Empresa y credenciales del admin"
// @Success      201   {object}  dto.CreateCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/create-company [post]
func (h *AuthHandler) CreateCompany(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateCompany(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
)

// activeChecker contrato mínimo para verificar la cuenta; lo implementa
// *usecase.EmployeeUseCase.
type activeChecker interface {
	IsActive(ctx context.Context, companyID, id string) (bool, error)
}

// RequireActiveAccount rechaza tokens de empleados desactivados después de emitido el
// token. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay user_id/company_id en el contexto.
//   - 403 Forbidden    → empleado inactivo o eliminado.
//   - 503 Service Unavailable → fallo al consultar la DB.
func RequireActiveAccount(checker activeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, companyID := GetUserID(c), GetCompanyID(c)
		if userID == "" || companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "token sin empleado o empresa",
			})
		}

		active, err := checker.IsActive(c.UserContext(), companyID, userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_CHECK_FAILED",
				Message: "no se pudo verificar la cuenta, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_INACTIVE",
				Message: "la cuenta está inactiva",
			})
		}
		return c.Next()
	}
}

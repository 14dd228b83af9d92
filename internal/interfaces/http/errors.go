package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
)

// errInvalidBody el cuerpo no es JSON válido para el DTO esperado.
var errInvalidBody = errors.New("cuerpo inválido")

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden relevante: los sentinelas específicos van antes que los genéricos.
var errorTable = []errorMapping{
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrAlreadyCancelled, fiber.StatusBadRequest, "ALREADY_CANCELLED"},
	{domain.ErrEmptyOrder, fiber.StatusBadRequest, "EMPTY_ORDER"},
	{domain.ErrSupplierNotFound, fiber.StatusNotFound, "SUPPLIER_NOT_FOUND"},
	{domain.ErrNoItemsFound, fiber.StatusNotFound, "NO_ITEMS_FOUND"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicateOrderNumber, fiber.StatusConflict, "DUPLICATE_ORDER_NUMBER"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotEditable, fiber.StatusForbidden, "NOT_EDITABLE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// NewErrorHandler devuelve el ErrorHandler de Fiber que traduce errores de dominio a
// dto.ErrorResponse. Los errores no mapeados se registran y responden 500; su mensaje
// solo se expone si exposeInternal es true (development).
func NewErrorHandler(log zerolog.Logger, exposeInternal bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, log, exposeInternal, err)
	}
}

func writeError(c *fiber.Ctx, log zerolog.Logger, exposeInternal bool, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   stockErr.Error(),
			ProductID: stockErr.ProductID,
			Current:   stockErr.Current,
			Requested: stockErr.Requested,
			Shortage:  stockErr.Shortage,
		})
	}
	var missing *domain.ProductNotFoundError
	if errors.As(err, &missing) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ProductNotFoundResponse{
			Code:       "PRODUCT_NOT_FOUND",
			Message:    domain.ErrProductNotFound.Error(),
			ProductIDs: missing.IDs,
		})
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: verr.Error(), Fields: verr.Fields,
		})
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error()})
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("error interno")
	msg := "error interno del servidor"
	if exposeInternal {
		msg = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}

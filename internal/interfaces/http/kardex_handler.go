package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// KardexHandler movimientos y consultas del Kardex.
type KardexHandler struct {
	uc *kardex.UseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *kardex.UseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento manual
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKardexMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.KardexMovementResponse
// @Failure      400   {object}  dto.InsufficientStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /kardex/create [post]
func (h *KardexHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKardexMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateMovement(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByProduct godoc
// @Summary      Kardex de un producto
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {array}  dto.KardexEntryResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /kardex/products/{productId} [get]
func (h *KardexHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), GetCompanyID(c), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByOrder godoc
// @Summary      Movimientos de una orden
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden de venta o compra"
// @Success      200      {array}  dto.KardexEntryResponse
// @Router       /kardex/orders/{orderId} [get]
func (h *KardexHandler) ByOrder(c *fiber.Ctx) error {
	out, err := h.uc.ListByOrder(c.UserContext(), GetCompanyID(c), c.Params("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar Kardex de un producto a Excel
// @Tags         kardex
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {file}  binary
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /kardex/products/{productId}/export [get]
func (h *KardexHandler) Export(c *fiber.Ctx) error {
	body, filename, err := h.uc.ExportProduct(c.UserContext(), GetCompanyID(c), c.Params("productId"))
	if err != nil {
		return err
	}
	return sendFile(c, xlsxContentType, filename, body)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/purchasing"
)

// PurchaseHandler órdenes de compra.
type PurchaseHandler struct {
	svc *purchasing.Service
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(svc *purchasing.Service) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  No mueve stock; el stock entra al emitir la factura.
// @Tags         purchase
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Orden de compra"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /purchase/create [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {object}  dto.PurchaseOrderListResponse
// @Router       /purchase/all [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByOrderNumber godoc
// @Summary      Obtener orden de compra por número
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        orderNumber  path  string  true  "Número de orden"
// @Success      200          {object}  dto.PurchaseOrderResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /purchase/{orderNumber} [get]
func (h *PurchaseHandler) GetByOrderNumber(c *fiber.Ctx) error {
	out, err := h.svc.GetByOrderNumber(c.UserContext(), GetCompanyID(c), c.Params("orderNumber"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de compra
// @Description  Solo status (tabla de transiciones) y notes.
// @Tags         purchase
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePurchaseOrderRequest  true  "Cambios"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /purchase/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de compra
// @Tags         purchase
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /purchase/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

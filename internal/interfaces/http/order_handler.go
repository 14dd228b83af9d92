package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/orders"
)

// OrderHandler ciclo de vida de órdenes de venta.
type OrderHandler struct {
	svc *orders.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Descuenta el stock de cada ítem y registra las salidas en el Kardex (todo o nada).
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "Orden"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.InsufficientStockResponse
// @Failure      404   {object}  dto.ProductNotFoundResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /orders/create [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
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
// @Summary      Listar órdenes de venta
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {object}  dto.SalesOrderListResponse
// @Router       /orders/all [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden de venta
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetForEdit godoc
// @Summary      Obtener orden para edición
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/edit/{id} [get]
func (h *OrderHandler) GetForEdit(c *fiber.Ctx) error {
	out, err := h.svc.GetForEdit(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar orden de venta
// @Description  Revierte los movimientos anteriores y aplica los nuevos ítems en una transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateSalesOrderRequest  true  "Orden completa"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.InsufficientStockResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSalesOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.UpdateStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Devuelve el stock de todos los ítems.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.svc.Cancel(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden
// @Description  Revierte los movimientos de stock antes de borrar.
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LastOrderNumber godoc
// @Summary      Último número de orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LastOrderNumberResponse
// @Router       /orders/last-number [get]
func (h *OrderHandler) LastOrderNumber(c *fiber.Ctx) error {
	out, err := h.svc.LastOrderNumber(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Clientes con direcciones para el formulario de órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {object}  dto.CustomerListResponse
// @Router       /orders/customers/list [get]
func (h *OrderHandler) Customers(c *fiber.Ctx) error {
	out, err := h.svc.Customers(c.UserContext(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

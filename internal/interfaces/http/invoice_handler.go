package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/purchasing"
)

// InvoiceHandler facturas de compra (protegido).
type InvoiceHandler struct {
	svc *purchasing.Service
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc *purchasing.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Create godoc
// @Summary      Emitir factura de compra
// @Description  Registra la factura, da entrada al stock de todos los ítems de la orden y la marca como recibida.
// @Tags         invoice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.IssueInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /invoice/create [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.IssueInvoice(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByOrder godoc
// @Summary      Facturas de una orden de compra
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Param        order_id  path  string  true  "ID de la orden de compra"
// @Success      200       {array}  dto.InvoiceResponse
// @Router       /invoice/in/{order_id} [get]
func (h *InvoiceHandler) ListByOrder(c *fiber.Ctx) error {
	out, err := h.svc.ListInvoicesByOrder(c.UserContext(), GetCompanyID(c), c.Params("order_id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoice/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetInvoice(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoice
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoice/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	body, filename, err := h.svc.InvoicePDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, "application/pdf", filename, body)
}

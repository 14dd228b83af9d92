package purchasing

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

// InvoiceDocument datos necesarios para la representación gráfica de una factura de compra.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Order    *entity.PurchaseOrder
	Company  *entity.Company
	Supplier *entity.Supplier
}

// InvoicePDFGenerator genera el PDF de una factura de compra.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

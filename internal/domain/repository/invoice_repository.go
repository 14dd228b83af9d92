package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

// InvoiceRepository persistencia de facturas de compra.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	ListByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID string) ([]*entity.Invoice, error)
}

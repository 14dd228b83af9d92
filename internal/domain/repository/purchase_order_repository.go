package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// PurchaseOrderRepository persistencia de órdenes de compra e ítems.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	GetByID(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error)
	GetByOrderNumber(ctx context.Context, companyID, orderNumber string) (*entity.PurchaseOrder, error)
	ExistsOrderNumber(ctx context.Context, companyID, orderNumber string) (bool, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, int, error)
	Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error)
	DeleteItems(ctx context.Context, purchaseOrderID string) error
	Delete(ctx context.Context, companyID, id string) (bool, error)
}

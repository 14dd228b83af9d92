package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

// SalesOrderRepository persistencia de órdenes de venta e ítems.
// GetByID y GetForUpdate incluyen los ítems.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, companyID, id string) (*entity.SalesOrder, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.SalesOrder, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, int, error)
	UpdateHeader(ctx context.Context, order *entity.SalesOrder) error
	UpdateStatus(ctx context.Context, companyID, id string, status entity.SalesOrderStatus) error
	DeleteItems(ctx context.Context, orderID string) error
	Delete(ctx context.Context, companyID, id string) error
	// LastOrderNumber devuelve el mayor número de orden numérico ("" si no hay).
	LastOrderNumber(ctx context.Context, companyID string) (string, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// ServiceOrderRepository define el puerto de persistencia para ServiceOrder.
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder) error
	GetByID(ctx context.Context, companyID, id string) (*entity.ServiceOrder, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.ServiceOrder, int, error)
	Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error)
	Delete(ctx context.Context, companyID, id string) (bool, error)
}

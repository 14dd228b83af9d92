package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, int, error)
	Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error)
	Delete(ctx context.Context, companyID, id string) (bool, error)
}

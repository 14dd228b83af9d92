package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe en la empresa.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	// FindMissing devuelve los ids que no existen o no pertenecen a la empresa.
	FindMissing(ctx context.Context, companyID string, ids []string) ([]string, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, int, error)
	Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error)
	// SetStock solo debe llamarlo el motor de Kardex.
	SetStock(ctx context.Context, companyID, id string, stock int) error
	Delete(ctx context.Context, companyID, id string) (bool, error)
	// ListBelowMinimum lista productos con stock < minimum_stock. companyID vacío = todas las empresas.
	ListBelowMinimum(ctx context.Context, companyID string) ([]*entity.Product, error)
}

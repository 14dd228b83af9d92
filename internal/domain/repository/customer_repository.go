package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// CustomerRepository define el puerto de persistencia para Customer y sus direcciones.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	GetAddress(ctx context.Context, customerID, addressID string) (*entity.Address, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error)
	Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error)
	ReplaceAddresses(ctx context.Context, customerID string, addresses []entity.Address) error
	Delete(ctx context.Context, companyID, id string) (bool, error)
}

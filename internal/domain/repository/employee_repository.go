package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error)
	// FindByLogin busca por username o email sin filtrar empresa (login).
	FindByLogin(ctx context.Context, login string) (*entity.Employee, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Employee, int, error)
	Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error)
	Delete(ctx context.Context, companyID, id string) (bool, error)
}

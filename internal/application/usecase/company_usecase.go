package usecase

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// CompanyUseCase consulta y edición de la empresa del token. La creación vive en auth
// (empresa + primer administrador en una transacción).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromCompany(company)
	return &resp, nil
}

// Update modifica nombre, logo o icono (URLs).
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p := patch.New()
	patch.Optional(p, "name", in.Name)
	patch.Optional(p, "logo", in.Logo)
	patch.Optional(p, "icon", in.Icon)
	if !p.Empty() {
		found, err := uc.repo.Update(ctx, id, p)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, domain.ErrNotFound
		}
	}
	return uc.GetByID(ctx, id)
}

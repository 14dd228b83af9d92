package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores. El código es único por empresa.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		Name:                 in.Name,
		Code:                 in.Code,
		TradingName:          in.TradingName,
		Email:                in.Email,
		Phone:                in.Phone,
		NationalRegisterCode: in.NationalRegisterCode,
		Active:               *in.Active,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	resp := dto.FromSupplier(s)
	return &resp, nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromSupplier(s)
	return &resp, nil
}

func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSupplier(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p := patch.New()
	patch.Optional(p, "name", in.Name)
	patch.Optional(p, "code", in.Code)
	patch.Optional(p, "trading_name", in.TradingName)
	patch.Optional(p, "email", in.Email)
	patch.Optional(p, "phone", in.Phone)
	patch.Optional(p, "national_register_code", in.NationalRegisterCode)
	patch.Optional(p, "active", in.Active)
	if !p.Empty() {
		found, err := uc.repo.Update(ctx, companyID, id, p)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, domain.ErrNotFound
		}
	}
	return uc.GetByID(ctx, companyID, id)
}

// Delete ErrConflict si el proveedor tiene órdenes de compra.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	found, err := uc.repo.Delete(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

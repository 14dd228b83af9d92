package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// EmployeeUseCase aplica reglas de negocio para empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso con el puerto de persistencia.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create hashea el password con bcrypt. Sin estado explícito el empleado nace activo.
func (uc *EmployeeUseCase) Create(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	e := &entity.Employee{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Access:       in.Access,
		Sector:       in.Sector,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	status := in.Status
	if status == "" {
		status = entity.EmployeeStatusActive
	}
	e.SetStatus(status)
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := dto.FromEmployee(e)
	return &resp, nil
}

// GetByID obtiene un empleado de la empresa.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromEmployee(e)
	return &resp, nil
}

func (uc *EmployeeUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.FromEmployee(e))
	}
	return &dto.EmployeeListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Update cambios parciales; un password nuevo se vuelve a hashear.
func (uc *EmployeeUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p := patch.New()
	patch.Optional(p, "name", in.Name)
	patch.Optional(p, "email", in.Email)
	patch.Optional(p, "role", in.Role)
	patch.Optional(p, "access", in.Access)
	patch.Optional(p, "sector", in.Sector)
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		p.Set("password_hash", string(hash))
	}
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

// UpdateStatus cambia el estado; active se deriva (solo "active" queda activo).
func (uc *EmployeeUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateEmployeeStatusRequest) (*dto.EmployeeStatusResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var e entity.Employee
	e.SetStatus(in.Status)
	found, err := uc.repo.Update(ctx, companyID, id,
		patch.New().Set("status", e.Status).Set("active", e.Active))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &dto.EmployeeStatusResponse{ID: id, Status: e.Status, Active: e.Active}, nil
}

// GetStatus estado actual del empleado.
func (uc *EmployeeUseCase) GetStatus(ctx context.Context, companyID, id string) (*dto.EmployeeStatusResponse, error) {
	e, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.EmployeeStatusResponse{ID: e.ID, Status: e.Status, Active: e.Active}, nil
}

func (uc *EmployeeUseCase) Delete(ctx context.Context, companyID, id string) error {
	found, err := uc.repo.Delete(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

// IsActive informa si el empleado sigue activo. Un empleado inexistente se
// considera inactivo (sin error); solo fallos de infraestructura devuelven error.
func (uc *EmployeeUseCase) IsActive(ctx context.Context, companyID, id string) (bool, error) {
	if companyID == "" || id == "" {
		return false, fmt.Errorf("employee: companyID e id son obligatorios")
	}
	e, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return false, err
	}
	return e != nil && e.Active, nil
}

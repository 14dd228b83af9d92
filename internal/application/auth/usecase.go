package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
	"github.com/jhoicas/erp-kardex/pkg/jwt"
)

// Valores del primer administrador de una empresa.
const (
	adminAccess = "full"
	adminSector = "administration"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y alta de empresa.
type AuthUseCase struct {
	tx     repository.TxRunner
	store  repository.Store
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx repository.TxRunner, store repository.Store, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, store: store, jwtCfg: jwtCfg}
}

// LoginAdmin solo empleados con rol admin.
func (uc *AuthUseCase) LoginAdmin(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	e, err := uc.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	if e.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return uc.issue(e)
}

// LoginEmployee cualquier rol; un empleado no activo recibe ErrForbidden.
func (uc *AuthUseCase) LoginEmployee(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	e, err := uc.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.issue(e)
}

// authenticate verifica username/email y password. Credenciales inválidas y usuario
// inexistente devuelven el mismo error.
func (uc *AuthUseCase) authenticate(ctx context.Context, in dto.LoginRequest) (*entity.Employee, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.store.Employees().FindByLogin(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !e.Active {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func (uc *AuthUseCase) issue(e *entity.Employee) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Claims{
		UserID:    e.ID,
		Username:  e.Username,
		Role:      e.Role,
		CompanyID: e.CompanyID,
		Sector:    e.Sector,
		Access:    e.Access,
		Status:    e.Status,
		Active:    e.Active,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Employee: dto.FromEmployee(e)}, nil
}

// CreateCompany crea la empresa y su primer administrador en una sola transacción.
func (uc *AuthUseCase) CreateCompany(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Logo:      in.Logo,
		Icon:      in.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &entity.Employee{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Name:         in.AdminName,
		Username:     in.AdminUsername,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Access:       adminAccess,
		Sector:       adminSector,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin.SetStatus(entity.EmployeeStatusActive)

	err = uc.tx.Run(ctx, func(store repository.Store) error {
		if err := store.Companies().Create(ctx, company); err != nil {
			return err
		}
		return store.Employees().Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateCompanyResponse{
		Company: dto.FromCompany(company),
		Admin:   dto.FromEmployee(admin),
	}, nil
}

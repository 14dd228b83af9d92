package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/auth"
	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/usecase"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/memstore"
	"github.com/jhoicas/erp-kardex/pkg/jwt"
)

const testSecret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *memstore.Store, *dto.CreateCompanyResponse) {
	t.Helper()
	store := memstore.New()
	uc := auth.NewAuthUseCase(store, store, auth.JWTConfig{Secret: testSecret, ExpMinutes: 10, Issuer: "test"})
	created, err := uc.CreateCompany(context.Background(), dto.CreateCompanyRequest{
		Name:          "Ferretería",
		AdminName:     "Admin",
		AdminUsername: "admin",
		AdminEmail:    "admin@ferreteria.co",
		AdminPassword: "secreto1",
	})
	require.NoError(t, err)
	return uc, store, created
}

func TestCreateCompany_CreaAdministrador(t *testing.T) {
	_, store, created := setup(t)

	assert.Equal(t, "Ferretería", created.Company.Name)
	assert.Equal(t, "admin", created.Admin.Role)
	assert.Equal(t, "full", created.Admin.Access)
	assert.Equal(t, "administration", created.Admin.Sector)
	assert.True(t, created.Admin.Active)

	company, err := store.Companies().GetByID(context.Background(), created.Company.ID)
	require.NoError(t, err)
	assert.NotNil(t, company)
}

func TestCreateCompany_UsernameDuplicadoNoCreaEmpresa(t *testing.T) {
	uc, store, _ := setup(t)

	_, err := uc.CreateCompany(context.Background(), dto.CreateCompanyRequest{
		Name: "Otra", AdminName: "X", AdminUsername: "admin", AdminPassword: "secreto1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	emp, err := store.Employees().FindByLogin(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", emp.Name)
}

func TestLoginAdmin_PorUsernameYEmail(t *testing.T) {
	uc, _, created := setup(t)

	for _, login := range []string{"admin", "admin@ferreteria.co"} {
		resp, err := uc.LoginAdmin(context.Background(), dto.LoginRequest{Login: login, Password: "secreto1"})
		require.NoError(t, err, login)

		claims, err := jwt.Parse(testSecret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, created.Admin.ID, claims.UserID)
		assert.Equal(t, created.Company.ID, claims.CompanyID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "admin", claims.Username)
		assert.True(t, claims.Active)
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.LoginAdmin(context.Background(), dto.LoginRequest{Login: "admin", Password: "malo"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.LoginEmployee(context.Background(), dto.LoginRequest{Login: "nadie", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_RolesYEstado(t *testing.T) {
	uc, store, created := setup(t)
	ctx := context.Background()
	employees := usecase.NewEmployeeUseCase(store.Employees())
	seller, err := employees.Create(ctx, created.Company.ID, dto.CreateEmployeeRequest{
		Name: "Vendedor", Username: "vende", Password: "secreto2", Role: "vendedor",
	})
	require.NoError(t, err)

	_, err = uc.LoginAdmin(ctx, dto.LoginRequest{Login: "vende", Password: "secreto2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := uc.LoginEmployee(ctx, dto.LoginRequest{Login: "vende", Password: "secreto2"})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", resp.Employee.Role)

	_, err = employees.UpdateStatus(ctx, created.Company.ID, seller.ID, dto.UpdateEmployeeStatusRequest{Status: "inactive"})
	require.NoError(t, err)
	_, err = uc.LoginEmployee(ctx, dto.LoginRequest{Login: "vende", Password: "secreto2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/application/usecase"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/memstore"
)

const (
	companyA = "company-a"
	companyB = "company-b"
)

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func newProductUC() (*usecase.ProductUseCase, *memstore.Store) {
	store := memstore.New()
	return usecase.NewProductUseCase(store, store, kardex.NewEngine()), store
}

func TestProduct_StockInicialEntraPorKardex(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()

	p, err := uc.Create(ctx, companyA, dto.CreateProductRequest{
		Code: "A-1", Name: "Tornillo", InitialStock: 12, MinimumStock: 5, Cost: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, p.Stock)

	entries, err := store.Kardex().ListByProduct(ctx, companyA, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementInbound, entries[0].MovementType)
	assert.Equal(t, 0, entries[0].StockBefore)
	assert.Equal(t, 12, entries[0].StockAfter)
}

func TestProduct_CodigoDuplicado(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-1", Name: "Uno"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-1", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, companyB, dto.CreateProductRequest{Code: "A-1", Name: "Otra empresa"})
	assert.NoError(t, err)
}

func TestProduct_UpdateSoloCamposPresentes(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-1", Name: "Uno", Brand: "ACME", InitialStock: 4})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, companyA, p.ID, dto.UpdateProductRequest{Name: ptr("Renombrado"), Price: ptr(decimal.NewFromInt(99))})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", updated.Name)
	assert.Equal(t, "ACME", updated.Brand)
	assert.Equal(t, 4, updated.Stock)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(99)))

	_, err = uc.Update(ctx, companyB, p.ID, dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_AdjustStock(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-1", Name: "Uno", InitialStock: 5})
	require.NoError(t, err)

	out, err := uc.AdjustStock(ctx, companyA, p.ID, dto.AdjustStockRequest{Quantity: -2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Product.Stock)
	assert.Equal(t, "outbound", out.Entry.MovementType)
	assert.Equal(t, 2, out.Entry.Quantity)

	_, err = uc.AdjustStock(ctx, companyA, p.ID, dto.AdjustStockRequest{Quantity: -4})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 1, stockErr.Shortage)

	_, err = uc.AdjustStock(ctx, companyA, p.ID, dto.AdjustStockRequest{Quantity: 0})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"quantity"}, verr.Fields)

	got, err := uc.GetByID(ctx, companyA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestProduct_DeleteConMovimientosEsConflicto(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	withStock, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-1", Name: "Uno", InitialStock: 1})
	require.NoError(t, err)
	empty, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-2", Name: "Dos"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, companyA, withStock.ID), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, companyA, empty.ID))
	assert.ErrorIs(t, uc.Delete(ctx, companyA, empty.ID), domain.ErrNotFound)
}

func TestProduct_LowStock(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-1", Name: "Bajo", InitialStock: 2, MinimumStock: 5})
	require.NoError(t, err)
	_, err = uc.Create(ctx, companyA, dto.CreateProductRequest{Code: "A-2", Name: "Ok", InitialStock: 5, MinimumStock: 5})
	require.NoError(t, err)
	_, err = uc.Create(ctx, companyB, dto.CreateProductRequest{Code: "B-1", Name: "Otra", MinimumStock: 1})
	require.NoError(t, err)

	items, err := uc.LowStock(ctx, companyA)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A-1", items[0].Code)
	assert.Equal(t, 3, items[0].Missing)

	all, err := uc.ScanLowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProduct_ListPaginado(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	for _, code := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Code: code, Name: code})
		require.NoError(t, err)
	}
	resp, err := uc.List(ctx, companyA, dto.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "C", resp.Items[0].Code)
	assert.True(t, resp.Page.HasPrev)
	assert.False(t, resp.Page.HasNext)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes / proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomer_ReemplazaDirecciones(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewCustomerUseCase(store, store)
	ctx := context.Background()

	c, err := uc.Create(ctx, companyA, dto.CreateCustomerRequest{
		Name:      "Cliente",
		Addresses: []dto.AddressRequest{{Street: "Calle 1", City: "Cali"}, {Street: "Calle 2", City: "Cali"}},
	})
	require.NoError(t, err)
	require.Len(t, c.Addresses, 2)

	updated, err := uc.Update(ctx, companyA, c.ID, dto.UpdateCustomerRequest{
		Phone:     ptr("555"),
		Addresses: &[]dto.AddressRequest{{Street: "Carrera 9", City: "Medellín"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cliente", updated.Name)
	assert.Equal(t, "555", updated.Phone)
	require.Len(t, updated.Addresses, 1)
	assert.Equal(t, "Medellín", updated.Addresses[0].City)

	_, err = uc.GetByID(ctx, companyB, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplier_CodigoUnicoPorEmpresa(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewSupplierUseCase(store.Suppliers())
	ctx := context.Background()
	req := dto.CreateSupplierRequest{
		Name: "Prov", Code: "P1", TradingName: "Prov SAS", Email: "p@prov.co",
		Phone: "1", NationalRegisterCode: "900", Active: ptr(true),
	}
	s, err := uc.Create(ctx, companyA, req)
	require.NoError(t, err)
	assert.True(t, s.Active)

	_, err = uc.Create(ctx, companyA, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, companyA, s.ID, dto.UpdateSupplierRequest{Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "P1", updated.Code)
}

func TestSupplier_CamposObligatorios(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewSupplierUseCase(store.Suppliers())

	_, err := uc.Create(context.Background(), companyA, dto.CreateSupplierRequest{Name: "x"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"code", "trading_name", "email", "phone", "national_register_code", "active"}, verr.Fields)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados / empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployee_EstadoDerivaActive(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees())
	ctx := context.Background()

	e, err := uc.Create(ctx, companyA, dto.CreateEmployeeRequest{Name: "Ana", Username: "ana", Password: "secreto1", Role: "vendedor"})
	require.NoError(t, err)
	assert.Equal(t, "active", e.Status)
	assert.True(t, e.Active)

	for _, tc := range []struct {
		status string
		active bool
	}{
		{"away", false},
		{"inactive", false},
		{"active", true},
	} {
		st, err := uc.UpdateStatus(ctx, companyA, e.ID, dto.UpdateEmployeeStatusRequest{Status: tc.status})
		require.NoError(t, err)
		assert.Equal(t, tc.active, st.Active, tc.status)

		got, err := uc.GetStatus(ctx, companyA, e.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.status, got.Status)

		active, err := uc.IsActive(ctx, companyA, e.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.active, active)
	}

	_, err = uc.UpdateStatus(ctx, companyA, e.ID, dto.UpdateEmployeeStatusRequest{Status: "vacaciones"})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestEmployee_PasswordHasheado(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees())
	ctx := context.Background()

	e, err := uc.Create(ctx, companyA, dto.CreateEmployeeRequest{Name: "Ana", Username: "ana", Password: "secreto1", Role: "admin"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, companyA, e.ID, dto.UpdateEmployeeRequest{Password: ptr("nuevo-secreto")})
	require.NoError(t, err)

	stored, err := store.Employees().GetByID(ctx, companyA, e.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nuevo-secreto")))

	_, err = uc.Create(ctx, companyB, dto.CreateEmployeeRequest{Name: "Otra", Username: "ana", Password: "secreto1", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompany_Update(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: companyA, Name: "Vieja"}))
	uc := usecase.NewCompanyUseCase(store.Companies())

	c, err := uc.Update(ctx, companyA, dto.UpdateCompanyRequest{Name: ptr("Nueva"), Logo: ptr("https://cdn.example.com/logo.png")})
	require.NoError(t, err)
	assert.Equal(t, "Nueva", c.Name)
	assert.Equal(t, "https://cdn.example.com/logo.png", c.Logo)

	_, err = uc.Update(ctx, companyA, dto.UpdateCompanyRequest{Logo: ptr("no-es-url")})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de servicio
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceOrder_Transiciones(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewServiceOrderUseCase(store, store)
	ctx := context.Background()

	o, err := uc.Create(ctx, companyA, dto.CreateServiceOrderRequest{
		OrderNumber: "S-1",
		Items:       json.RawMessage(`[{"descripcion":"mantenimiento"}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "initialized", o.Status)

	_, err = uc.UpdateStatus(ctx, companyA, o.ID, "finish")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := uc.UpdateStatus(ctx, companyA, o.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", got.Status)

	got, err = uc.Update(ctx, companyA, o.ID, dto.UpdateServiceOrderRequest{Status: ptr("finish"), Message: ptr("listo")})
	require.NoError(t, err)
	assert.Equal(t, "finish", got.Status)
	assert.Equal(t, "listo", got.Message)
	assert.JSONEq(t, `[{"descripcion":"mantenimiento"}]`, string(got.Items))

	_, err = uc.UpdateStatus(ctx, companyA, o.ID, "canceled")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestServiceOrder_ClienteDeOtraEmpresa(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c1", CompanyID: companyB, Name: "Ajeno"}))
	uc := usecase.NewServiceOrderUseCase(store, store)

	_, err := uc.Create(ctx, companyA, dto.CreateServiceOrderRequest{OrderNumber: "S-1", CustomerID: ptr("c1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

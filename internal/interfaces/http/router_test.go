package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/auth"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/application/orders"
	"github.com/jhoicas/erp-kardex/internal/application/purchasing"
	"github.com/jhoicas/erp-kardex/internal/application/usecase"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/memstore"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/erp-kardex/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = secret
	testIssuer    = issuer
	testExpMin    = 60
)

type api struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memstore.New()
	engine := kardex.NewEngine()
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store, store, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CompanyUC:      usecase.NewCompanyUseCase(store.Companies()),
		ProductUC:      usecase.NewProductUseCase(store, store, engine),
		CustomerUC:     usecase.NewCustomerUseCase(store, store),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers()),
		EmployeeUC:     usecase.NewEmployeeUseCase(store.Employees()),
		ServiceOrderUC: usecase.NewServiceOrderUseCase(store, store),
		KardexUC:       kardex.NewUseCase(store, store, engine, xlsx.NewKardexExporter()),
		Orders:         orders.NewService(store, store, engine),
		Purchasing:     purchasing.NewService(store, store, engine, pdf.NewMarotoPDFGenerator()),
		JWTSecret:      testJWTSecret,
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(zerolog.Nop(), false)})
	apphttp.Router(app, deps)
	return &api{t: t, app: app}
}

// do envía body como JSON (o tal cual si es string) y devuelve estado y cuerpo crudo.
func (a *api) do(method, path, token string, body any) (int, []byte) {
	a.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, raw
}

// json hace la petición, exige el estado esperado y decodifica la respuesta.
func (a *api) json(method, path, token string, body any, want int) map[string]any {
	a.t.Helper()
	status, raw := a.do(method, path, token, body)
	require.Equal(a.t, want, status, "%s %s → %s", method, path, raw)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	return out
}

// adminToken crea una empresa nueva y devuelve el token de su administrador.
func (a *api) adminToken() string {
	a.t.Helper()
	a.json(http.MethodPost, "/admin/create-company", "", map[string]any{
		"name": "Ferretería Central", "adminName": "Admin", "adminUsername": "admin", "adminPassword": "secreto1",
	}, http.StatusCreated)
	out := a.json(http.MethodPost, "/login/auth", "", map[string]any{"username": "admin", "password": "secreto1"}, http.StatusOK)
	return out["token"].(string)
}

func (a *api) createProduct(token, code string, stock int) string {
	a.t.Helper()
	out := a.json(http.MethodPost, "/products/create", token, map[string]any{
		"code": code, "name": "Producto " + code, "price": "100", "cost": "60", "stock": stock, "minimumStock": 2,
	}, http.StatusCreated)
	return out["id"].(string)
}

func (a *api) createCustomer(token string) string {
	a.t.Helper()
	out := a.json(http.MethodPost, "/customers/create", token, map[string]any{
		"name": "Cliente Uno", "addresses": []map[string]any{{"street": "Calle 1", "city": "Bogotá"}},
	}, http.StatusCreated)
	return out["id"].(string)
}

func salesOrder(number, customerID, productID string, qty int) map[string]any {
	return map[string]any{
		"orderNumber": number, "customerId": customerID, "totalAmount": "300", "currency": "COP",
		"orderDate": "2026-03-01", "salesperson": "Ana",
		"orderItems": []map[string]any{{"productId": productID, "quantity": qty, "unitPrice": "100"}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutasProtegidasSinToken(t *testing.T) {
	a := newAPI(t)
	status, raw := a.do(http.MethodGet, "/products/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(raw), "MISSING_TOKEN")
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	a := newAPI(t)
	a.adminToken()
	out := a.json(http.MethodPost, "/login/auth", "", map[string]any{"username": "admin", "password": "otra"}, http.StatusUnauthorized)
	assert.Equal(t, "UNAUTHORIZED", out["code"])
}

func TestAPI_VentaDescuentaStockYRegistraKardex(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()
	productID := a.createProduct(token, "P1", 5)
	customerID := a.createCustomer(token)

	out := a.json(http.MethodPost, "/orders/create", token, salesOrder("101", customerID, productID, 8), http.StatusBadRequest)
	assert.Equal(t, "INSUFFICIENT_STOCK", out["code"])
	assert.EqualValues(t, 5, out["currentStock"])
	assert.EqualValues(t, 3, out["shortage"])

	order := a.json(http.MethodPost, "/orders/create", token, salesOrder("101", customerID, productID, 3), http.StatusCreated)

	product := a.json(http.MethodGet, "/products/"+productID, token, nil, http.StatusOK)
	assert.EqualValues(t, 2, product["stock"])

	status, raw := a.do(http.MethodGet, "/kardex/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, status)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2, "stock inicial + salida de la orden")
	assert.EqualValues(t, 5, entries[1]["stockBefore"])
	assert.EqualValues(t, 2, entries[1]["stockAfter"])

	last := a.json(http.MethodGet, "/orders/last-number", token, nil, http.StatusOK)
	assert.Equal(t, "101", last["lastOrderNumber"])

	a.json(http.MethodPost, "/orders/create", token, salesOrder("101", customerID, productID, 1), http.StatusConflict)

	a.json(http.MethodPatch, "/orders/"+order["id"].(string)+"/cancel", token, nil, http.StatusOK)
	product = a.json(http.MethodGet, "/products/"+productID, token, nil, http.StatusOK)
	assert.EqualValues(t, 5, product["stock"])
}

func TestAPI_ProductoInexistenteListaIDs(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()
	customerID := a.createCustomer(token)

	out := a.json(http.MethodPost, "/orders/create", token, salesOrder("7", customerID, "no-existe", 1), http.StatusNotFound)
	assert.Equal(t, "PRODUCT_NOT_FOUND", out["code"])
	assert.Equal(t, []any{"no-existe"}, out["productIds"])
}

func TestAPI_BodyInvalidoYValidacion(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()

	out := a.json(http.MethodPost, "/products/create", token, "{", http.StatusBadRequest)
	assert.Equal(t, "INVALID_BODY", out["code"])

	out = a.json(http.MethodPost, "/products/create", token, map[string]any{"name": "Sin código"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["fields"], "code")
}

func TestAPI_AjusteDeStockYStockBajo(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()
	productID := a.createProduct(token, "P1", 3)

	out := a.json(http.MethodPut, "/products/"+productID+"/stock", token, map[string]any{"quantity": -2}, http.StatusOK)
	assert.EqualValues(t, 1, out["product"].(map[string]any)["stock"])

	out = a.json(http.MethodPut, "/products/"+productID+"/stock", token, map[string]any{"quantity": 3_000_000_000}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", out["code"])

	out = a.json(http.MethodPost, "/kardex/create", token, map[string]any{
		"productId": productID, "orderId": "00000000-0000-4000-8000-000000000000",
		"movementType": "inbound", "quantity": 5,
	}, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", out["code"])

	status, raw := a.do(http.MethodGet, "/products/low-stock", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"missing":1`)

	a.json(http.MethodDelete, "/products/"+productID, token, nil, http.StatusConflict)
}

func TestAPI_RolesYCuentaDesactivada(t *testing.T) {
	a := newAPI(t)
	admin := a.adminToken()
	productID := a.createProduct(admin, "P1", 1)

	emp := a.json(http.MethodPost, "/employees/create", admin, map[string]any{
		"name": "Vero", "username": "vero", "password": "secreto2", "role": "vendedor",
	}, http.StatusCreated)
	login := a.json(http.MethodPost, "/login/auth-employee", "", map[string]any{"username": "vero", "password": "secreto2"}, http.StatusOK)
	vendedor := login["token"].(string)

	a.json(http.MethodPost, "/login/auth", "", map[string]any{"username": "vero", "password": "secreto2"}, http.StatusForbidden)
	a.json(http.MethodGet, "/employees/all", vendedor, nil, http.StatusForbidden)
	a.json(http.MethodPut, "/products/"+productID+"/stock", vendedor, map[string]any{"quantity": 1}, http.StatusForbidden)
	a.json(http.MethodGet, "/products/all", vendedor, nil, http.StatusOK)

	a.json(http.MethodPut, "/employees/"+emp["id"].(string)+"/status", admin, map[string]any{"status": "inactive"}, http.StatusOK)
	out := a.json(http.MethodGet, "/products/all", vendedor, nil, http.StatusForbidden)
	assert.Equal(t, "ACCOUNT_INACTIVE", out["code"])
}

func TestAPI_FacturaDeCompraDaEntradaYGeneraPDF(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()
	productID := a.createProduct(token, "P1", 0)

	supplier := a.json(http.MethodPost, "/suppliers/create", token, map[string]any{
		"name": "Aceros SA", "code": "PR-1", "trading_name": "Aceros", "email": "ventas@aceros.co",
		"phone": "3000000", "national_register_code": "900123", "active": true,
	}, http.StatusCreated)
	po := a.json(http.MethodPost, "/purchase/create", token, map[string]any{
		"orderNumber": "OC-1", "supplierId": supplier["id"], "totalCost": "240", "currency": "COP",
		"orderDate": "2026-03-01", "buyer": "Luis",
		"orderItems": []map[string]any{{"productId": productID, "quantity": 4, "unitCost": "60"}},
	}, http.StatusCreated)

	issued := a.json(http.MethodPost, "/invoice/create", token, map[string]any{
		"order_id": po["id"], "invoice_number": "F-1",
	}, http.StatusCreated)
	assert.EqualValues(t, 4, issued["summary"].(map[string]any)["totalQuantity"])

	product := a.json(http.MethodGet, "/products/"+productID, token, nil, http.StatusOK)
	assert.EqualValues(t, 4, product["stock"])

	got := a.json(http.MethodGet, "/purchase/OC-1", token, nil, http.StatusOK)
	assert.Equal(t, "received", got["orderStatus"])

	a.json(http.MethodPost, "/invoice/create", token, map[string]any{
		"order_id": po["id"], "invoice_number": "F-2",
	}, http.StatusConflict)

	invoiceID := issued["invoice"].(map[string]any)["id"].(string)
	req := httptest.NewRequest(http.MethodGet, "/invoice/"+invoiceID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_ExportarKardex(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()
	productID := a.createProduct(token, "P9", 2)

	req := httptest.NewRequest(http.MethodGet, "/kardex/products/"+productID+"/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "kardex-P9.xlsx")
}

func TestAPI_MiEmpresa(t *testing.T) {
	a := newAPI(t)
	token := a.adminToken()

	out := a.json(http.MethodPut, "/companies/me", token, map[string]any{"name": "Ferretería Norte"}, http.StatusOK)
	assert.Equal(t, "Ferretería Norte", out["name"])
	out = a.json(http.MethodGet, "/companies/me", token, nil, http.StatusOK)
	assert.Equal(t, "Ferretería Norte", out["name"])
}

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	apphttp "github.com/jhoicas/erp-kardex/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erp-kardex/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cadena de middlewares de una ruta de stock
// ──────────────────────────────────────────────────────────────────────────────

const (
	secret     = "clave-de-pruebas"
	employeeID = "7d0c6c8e-0d51-4d3b-9a51-3f1f0b2c4a01"
	tenantID   = "1b9f3a2e-52c4-4f0e-8a43-9c7d5e6f7a02"
	issuer     = "erp-kardex-test"
)

// accountChecker registra con qué empresa y empleado se consultó la cuenta.
type accountChecker struct {
	active    bool
	err       error
	companyID string
	userID    string
	calls     int
}

func (a *accountChecker) IsActive(_ context.Context, companyID, id string) (bool, error) {
	a.calls++
	a.companyID, a.userID = companyID, id
	return a.active, a.err
}

// stockRoute monta PUT /products/:id/stock con el mismo orden que el router:
// token, cuenta activa y rol de bodega.
func stockRoute(checker *accountChecker) *fiber.App {
	app := fiber.New()
	app.Put("/products/:id/stock",
		apphttp.AuthMiddleware(secret),
		apphttp.RequireActiveAccount(checker),
		apphttp.RequireRole("admin", "bodeguero"),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"product":  c.Params("id"),
				"company":  apphttp.GetCompanyID(c),
				"employee": apphttp.GetUserID(c),
				"role":     apphttp.GetRole(c),
				"username": apphttp.GetClaims(c).Username,
			})
		},
	)
	return app
}

func bearer(t *testing.T, claims pkgjwt.Claims, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, claims, issuer, expMinutes)
	require.NoError(t, err)
	return "Bearer " + tok
}

func employeeToken(t *testing.T, role string) string {
	return bearer(t, pkgjwt.Claims{
		UserID: employeeID, CompanyID: tenantID, Role: role, Username: "bodega1", Active: true,
	}, 60)
}

func adjustStock(t *testing.T, app *fiber.App, authHeader string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/products/p-9/stock", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Token
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRoute_TokenRechazado(t *testing.T) {
	expired := bearer(t, pkgjwt.Claims{UserID: employeeID, CompanyID: tenantID, Role: "admin"}, -1)
	otherKey, err := pkgjwt.Generate("otra-clave", pkgjwt.Claims{UserID: employeeID, CompanyID: tenantID, Role: "admin"}, issuer, 60)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"esquema distinto de Bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"firmado con otra clave", "Bearer " + otherKey, "INVALID_TOKEN"},
		{"expirado", expired, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &accountChecker{active: true}
			status, body := adjustStock(t, stockRoute(checker), tc.header)

			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body["code"])
			assert.Zero(t, checker.calls, "sin token válido no se consulta la cuenta")
		})
	}
}

func TestStockRoute_ClaimsLleganAlHandler(t *testing.T) {
	checker := &accountChecker{active: true}
	status, body := adjustStock(t, stockRoute(checker), employeeToken(t, "bodeguero"))

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "p-9", body["product"])
	assert.Equal(t, tenantID, body["company"])
	assert.Equal(t, employeeID, body["employee"])
	assert.Equal(t, "bodeguero", body["role"])
	assert.Equal(t, "bodega1", body["username"])

	assert.Equal(t, 1, checker.calls)
	assert.Equal(t, tenantID, checker.companyID)
	assert.Equal(t, employeeID, checker.userID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuenta activa y rol
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRoute_CuentaYRol(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		checker accountChecker
		status  int
		code    string
	}{
		{"admin activo", "admin", accountChecker{active: true}, http.StatusOK, ""},
		{"bodeguero activo", "bodeguero", accountChecker{active: true}, http.StatusOK, ""},
		{"vendedor activo", "vendedor", accountChecker{active: true}, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", "", accountChecker{active: true}, http.StatusUnauthorized, "MISSING_ROLE"},
		{"bodeguero desactivado", "bodeguero", accountChecker{active: false}, http.StatusForbidden, "ACCOUNT_INACTIVE"},
		{"vendedor desactivado", "vendedor", accountChecker{active: false}, http.StatusForbidden, "ACCOUNT_INACTIVE"},
		{"base de datos caída", "admin", accountChecker{err: errors.New("conexión rechazada")}, http.StatusServiceUnavailable, "ACCOUNT_CHECK_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := tc.checker
			status, body := adjustStock(t, stockRoute(&checker), employeeToken(t, tc.role))

			assert.Equal(t, tc.status, status)
			if tc.code != "" {
				assert.Equal(t, tc.code, body["code"])
			}
		})
	}
}

func TestRequireActiveAccount_TokenSinEmpresa(t *testing.T) {
	checker := &accountChecker{active: true}
	header := bearer(t, pkgjwt.Claims{UserID: employeeID, Role: "admin"}, 60)

	status, body := adjustStock(t, stockRoute(checker), header)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.Zero(t, checker.calls)
}

func TestRequireRole_RespuestaConFormatoDeError(t *testing.T) {
	app := fiber.New()
	app.Get("/employees/all",
		apphttp.AuthMiddleware(secret),
		apphttp.RequireRole("admin"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/employees/all", nil)
	req.Header.Set("Authorization", employeeToken(t, "bodeguero"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "FORBIDDEN", out.Code)
	assert.Contains(t, out.Message, "bodeguero")
}

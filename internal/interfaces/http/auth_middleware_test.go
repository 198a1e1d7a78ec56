package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
	pkgjwt "github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "cafe-pos-test"
	testExpMin    = 60

	baristaID = "00000000-0000-4000-8000-00000000000b"
)

// ──────────────────────────────────────────────────────────────────────────────
// Permisos por rol sobre las rutas del POS
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_PermisosPorRuta(t *testing.T) {
	restock := "/api/inventory/ingredients/" + seed.CoffeeID + "/restock"
	adjust := "/api/inventory/ingredients/" + seed.CoffeeID + "/adjust"
	refund := "/api/orders/" + seed.DemoOrderID + "/refund"

	cases := []struct {
		name   string
		role   string
		userID string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"cajero no ajusta", entity.RoleCajero, seed.CashierID, http.MethodPost, adjust, `{"new_quantity":"10","reason":"conteo"}`, http.StatusForbidden, "FORBIDDEN"},
		{"barista no ajusta", entity.RoleBarista, baristaID, http.MethodPost, adjust, `{"new_quantity":"10","reason":"conteo"}`, http.StatusForbidden, "FORBIDDEN"},
		{"cajero no repone", entity.RoleCajero, seed.CashierID, http.MethodPost, restock, `{"quantity":"500","reason":"compra"}`, http.StatusForbidden, "FORBIDDEN"},
		{"barista repone", entity.RoleBarista, baristaID, http.MethodPost, restock, `{"quantity":"500","reason":"compra"}`, http.StatusCreated, ""},
		{"cajero no reembolsa", entity.RoleCajero, seed.CashierID, http.MethodPost, refund, `{"pin":"` + seed.AdminPIN + `"}`, http.StatusForbidden, "FORBIDDEN"},
		{"barista no ve el dashboard", entity.RoleBarista, baristaID, http.MethodGet, "/api/dashboard/summary", "", http.StatusForbidden, "FORBIDDEN"},
		{"cajero consulta stock bajo", entity.RoleCajero, seed.CashierID, http.MethodGet, "/api/inventory/low-stock", "", http.StatusOK, ""},
		{"cajero procesa pedidos", entity.RoleCajero, seed.CashierID, http.MethodPost, "/api/orders/" + seed.DemoOrderID + "/process", "", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildRouterApp(t)
			status, body := call(t, app, tc.method, tc.path, bearer(t, tc.userID, tc.role), tc.body)
			assert.Equal(t, tc.status, status)
			if tc.code != "" {
				assert.Equal(t, tc.code, body["code"])
			}
		})
	}
}

// El reembolso rechazado por rol no llega a validar el PIN ni a tocar el pedido.
func TestRequireRole_CajeroRechazadoNoConsumeElReembolso(t *testing.T) {
	app := buildRouterApp(t)
	path := "/api/orders/" + seed.DemoOrderID + "/refund"
	body := `{"pin":"` + seed.AdminPIN + `","reason":"cliente insatisfecho"}`

	status, _ := call(t, app, http.MethodPost, path, bearer(t, seed.CashierID, entity.RoleCajero), body)
	require.Equal(t, http.StatusForbidden, status)

	status, out := call(t, app, http.MethodPost, path, bearer(t, seed.AdminID, entity.RoleAdmin), body)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, out["success"])
}

func TestRequireRole_TokenSinRolResponde401(t *testing.T) {
	app := buildRouterApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, seed.AdminID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	status, body := call(t, app, http.MethodGet, "/api/dashboard/summary", "Bearer "+tok, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: cabecera Authorization
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CabeceraAuthorization(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, seed.CashierID, entity.RoleCajero, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret-completamente-distinto", seed.CashierID, entity.RoleCajero, testIssuer, testExpMin)
	require.NoError(t, err)
	valid, err := pkgjwt.Generate(testJWTSecret, seed.CashierID, entity.RoleCajero, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin cabecera", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto", "Token " + valid, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"sin esquema", valid, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secret", "Bearer " + foreign, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"esquema en minúsculas", "bearer " + valid, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildRouterApp(t)
			status, body := call(t, app, http.MethodGet, "/api/inventory/low-stock", tc.header, "")
			assert.Equal(t, tc.status, status)
			if tc.code != "" {
				assert.Equal(t, tc.code, body["code"])
			}
		})
	}
}

// El usuario del token queda registrado en la transacción de inventario.
func TestAuthMiddleware_UsuarioDelTokenLlegaALaTransaccion(t *testing.T) {
	app := buildRouterApp(t)
	tok := bearer(t, baristaID, entity.RoleBarista)
	base := "/api/inventory/ingredients/" + seed.MilkID

	status, _ := call(t, app, http.MethodPost, base+"/restock", tok, `{"quantity":"1000","reason":"entrega lechería"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodGet, base+"/transactions", tok, "")
	require.Equal(t, http.StatusOK, status)
	list, _ := body["transactions"].([]any)
	var found bool
	for _, raw := range list {
		tx, _ := raw.(map[string]any)
		if tx["reason"] == "entrega lechería" {
			found = true
			assert.Equal(t, baristaID, tx["user_id"])
			assert.Equal(t, entity.TransactionTypeRestock, tx["type"])
		}
	}
	assert.True(t, found, "la reposición debe aparecer en el historial")
}

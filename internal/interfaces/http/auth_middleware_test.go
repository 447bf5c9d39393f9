package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	apphttp "github.com/jhoicas/whiteslip-api/internal/interfaces/http"
	"github.com/jhoicas/whiteslip-api/pkg/i18n"
	pkgjwt "github.com/jhoicas/whiteslip-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests-32b!"
	testIssuer    = "white-slip-api-test"
	testAudience  = "white-slip-app-test"
	testUserID    = "00000000-0000-0000-0000-0000000000a1"
	testDeviceID  = "00000000-0000-0000-0000-0000000000d1"
)

func newTestIssuer(t *testing.T) *pkgjwt.Issuer {
	t.Helper()
	iss, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: testJWTSecret, Issuer: testIssuer, Audience: testAudience})
	require.NoError(t, err)
	return iss
}

func newResponder() *apphttp.Responder {
	return apphttp.NewResponder(i18n.New(), zerolog.Nop())
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para verificar el JWT y cargar el Principal
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, min entity.Role) *fiber.App {
	app := fiber.New()
	r := newResponder()
	app.Get("/protected",
		apphttp.AuthMiddleware(newTestIssuer(t), r),
		apphttp.RequireRole(min, r),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "sub": apphttp.GetSubject(c)})
		},
	)
	return app
}

func userToken(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := newTestIssuer(t).IssueUserToken(testUserID, role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func deviceToken(t *testing.T) string {
	t.Helper()
	tok, _, err := newTestIssuer(t).IssueDeviceToken(testDeviceID)
	require.NoError(t, err)
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(t, entity.RoleAdmin), userToken(t, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Admin", body["role"])
	assert.Equal(t, testUserID, body["sub"])
}

func TestRequireRole_RolSuperiorSatisfaceMinimo(t *testing.T) {
	app := buildTestApp(t, entity.RoleManager)

	for _, role := range []string{"Admin", "Manager"} {
		resp := doRequest(t, app, userToken(t, role))
		assert.Equal(t, http.StatusOK, resp.StatusCode, role)
		resp.Body.Close()
	}
}

func TestRequireRole_RolInsuficiente_Retorna403(t *testing.T) {
	cases := map[string]entity.Role{
		"Manager": entity.RoleAdmin,
		"Staff":   entity.RoleManager,
		"Cajero":  entity.RoleStaff, // rol desconocido nunca satisface
	}
	for role, min := range cases {
		t.Run(role, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(t, min), userToken(t, role))
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, apphttp.CodeForbidden, errorCode(t, resp))
		})
	}
}

func TestRequireRole_TokenDeDispositivo_Retorna403(t *testing.T) {
	resp := doRequest(t, buildTestApp(t, entity.RoleStaff), deviceToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			Audience:  gojwt.ClaimStrings{testAudience},
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(t, entity.RoleAdmin), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeMissingRole, errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_HeaderInvalido_Retorna401(t *testing.T) {
	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":       {"", apphttp.CodeMissingToken},
		"esquema distinto": {"Basic YWRtaW46YWRtaW4=", apphttp.CodeInvalidToken},
		"malformado":       {"Bearer token.invalido.aqui", apphttp.CodeInvalidToken},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(t, entity.RoleStaff), tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestAuthMiddleware_BearerSinDistinguirMayusculas(t *testing.T) {
	tok := userToken(t, "Admin")[len("Bearer "):]
	resp := doRequest(t, buildTestApp(t, entity.RoleAdmin), "bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MensajeLocalizado(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := buildTestApp(t, entity.RoleStaff).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
	assert.Contains(t, string(body), "Authorization header required")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireActiveDevice
// ──────────────────────────────────────────────────────────────────────────────

type gateFunc func(ctx context.Context, p pkgjwt.Principal) error

func (f gateFunc) Authorize(ctx context.Context, p pkgjwt.Principal) error { return f(ctx, p) }

func buildGateApp(t *testing.T, gate apphttp.DeviceAuthorizer) *fiber.App {
	app := fiber.New()
	r := newResponder()
	app.Get("/protected",
		apphttp.AuthMiddleware(newTestIssuer(t), r),
		apphttp.RequireActiveDevice(gate, r),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

func TestRequireActiveDevice_DispositivoRevocado_Retorna401(t *testing.T) {
	var seen pkgjwt.Principal
	app := buildGateApp(t, gateFunc(func(_ context.Context, p pkgjwt.Principal) error {
		seen = p
		return domain.ErrDeviceRevoked
	}))

	resp := doRequest(t, app, deviceToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "DEVICE_REVOKED", errorCode(t, resp))
	assert.True(t, seen.IsDevice())
	assert.Equal(t, testDeviceID, seen.ID)
}

func TestRequireActiveDevice_FalloDeAlmacenamiento_Retorna500SinDetalle(t *testing.T) {
	app := buildGateApp(t, gateFunc(func(context.Context, pkgjwt.Principal) error {
		return errors.New("conn refused 10.0.0.5:5432")
	}))

	resp := doRequest(t, app, deviceToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), apphttp.CodeInternal)
	assert.NotContains(t, string(body), "10.0.0.5")
}

func TestRequireActiveDevice_GatePermite(t *testing.T) {
	app := buildGateApp(t, gateFunc(func(context.Context, pkgjwt.Principal) error { return nil }))

	resp := doRequest(t, app, deviceToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

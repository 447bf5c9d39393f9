package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/whiteslip-api/internal/application/auth"
	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/application/ordering"
	"github.com/jhoicas/whiteslip-api/internal/application/usecase"
	"github.com/jhoicas/whiteslip-api/internal/infrastructure/memory"
	"github.com/jhoicas/whiteslip-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/whiteslip-api/internal/interfaces/http"
	"github.com/jhoicas/whiteslip-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba: repos en memoria, seed admin/admin123 y TEST123
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app     *fiber.App
	devices *memory.DeviceRepo
	users   *memory.UserRepo
	orders  *memory.OrderRepo
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newServer(t *testing.T, authRate string, db apphttp.Pinger) *testServer {
	t.Helper()
	log := zerolog.Nop()
	devices := memory.NewDeviceRepo()
	users := memory.NewUserRepo()
	menus := memory.NewMenuRepo()
	orders := memory.NewOrderRepo()
	hasher := password.NewBcryptHasher(4)
	issuer := newTestIssuer(t)

	require.NoError(t, usecase.Bootstrap(context.Background(), users, devices, hasher, usecase.BootstrapConfig{
		AdminAccount:  "admin",
		AdminPassword: "admin123",
		TestDevice:    "TEST123",
	}, log))

	app := fiber.New()
	err := apphttp.Router(app, apphttp.RouterDeps{
		DeviceUC: auth.NewDeviceUseCase(devices, issuer, log),
		LoginUC:  auth.NewLoginUseCase(users, hasher, issuer, log),
		Gate:     auth.NewDeviceGate(devices, log),
		Verifier: issuer,
		UserUC:   usecase.NewUserUseCase(users, hasher, log),
		MenuUC:   usecase.NewMenuUseCase(menus, log),
		OrderUC:  ordering.NewOrderUseCase(memory.TxRunner{Orders: orders}, orders, pdf.NewReceiptGenerator(""), log),
		ReportUC: ordering.NewReportUseCase(orders),
		DB:       db,
		AuthRate: authRate,
		Log:      log,
		Service:  "whiteslip-api",
	})
	require.NoError(t, err)
	return &testServer{app: app, devices: devices, users: users, orders: orders}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}

func (s *testServer) login(t *testing.T, account, pass string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/v1/auth/user-login", "", dto.UserLoginRequest{Account: account, Password: pass})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AuthResponse
	decode(t, resp, &out)
	return out.Token
}

func (s *testServer) deviceLogin(t *testing.T, code string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/v1/auth", "", dto.DeviceAuthRequest{DeviceCode: code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AuthResponse
	decode(t, resp, &out)
	return out.Token
}

func (s *testServer) createUser(t *testing.T, adminToken, account, role string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/v1/users", adminToken, dto.CreateUserRequest{Account: account, Password: "secreto1", Role: role})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestUserLogin_AdminSembrado(t *testing.T) {
	s := newServer(t, "", nil)

	resp := s.do(t, http.MethodPost, "/api/v1/auth/user-login", "", dto.UserLoginRequest{Account: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AuthResponse
	decode(t, resp, &out)

	assert.True(t, out.Success)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Admin", out.Role)
}

func TestUserLogin_CredencialesIncorrectas(t *testing.T) {
	s := newServer(t, "", nil)

	resp := s.do(t, http.MethodPost, "/api/v1/auth/user-login", "", dto.UserLoginRequest{Account: "admin", Password: "otra"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, resp))
}

func TestAuthenticate_CuerpoInvalido(t *testing.T) {
	s := newServer(t, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidBody, errorCode(t, resp))
}

func TestAuth_LimitePorIP_Retorna429(t *testing.T) {
	s := newServer(t, "2-M", nil)

	for i := 0; i < 2; i++ {
		resp := s.do(t, http.MethodPost, "/api/v1/auth", "", dto.DeviceAuthRequest{DeviceCode: "NOEXISTE"})
		assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		resp.Body.Close()
	}

	resp := s.do(t, http.MethodPost, "/api/v1/auth", "", dto.DeviceAuthRequest{DeviceCode: "TEST123"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, apphttp.CodeRateLimited, errorCode(t, resp))
}

func TestRouter_FormatoDeLimiteInvalido(t *testing.T) {
	err := apphttp.Router(fiber.New(), apphttp.RouterDeps{AuthRate: "veinte", Log: zerolog.Nop()})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispositivos: deshabilitar revoca el token vigente
// ──────────────────────────────────────────────────────────────────────────────

func TestDeshabilitarDispositivo_TokenVigenteRecibe401(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")
	devToken := s.deviceLogin(t, "TEST123")

	resp := s.do(t, http.MethodGet, "/api/v1/menu/latest-version", devToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	device, err := s.devices.GetByCode(context.Background(), "TEST123")
	require.NoError(t, err)
	require.NotNil(t, device)

	resp = s.do(t, http.MethodPut, "/api/v1/auth/devices/"+device.ID+"/disable", adminToken, nil)
	var status dto.DeviceStatusResponse
	decode(t, resp, &status)
	assert.Equal(t, "Disabled", status.Status)
	assert.NotEmpty(t, status.Message)

	resp = s.do(t, http.MethodGet, "/api/v1/menu/latest-version", devToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "DEVICE_REVOKED", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/v1/auth", "", dto.DeviceAuthRequest{DeviceCode: "TEST123"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "DEVICE_DISABLED", errorCode(t, resp))
}

func TestDispositivos_GenerarCodigoYListar(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")

	resp := s.do(t, http.MethodPost, "/api/v1/auth/generate-auth-code", adminToken, dto.GenerateAuthCodeRequest{DeviceName: "Caja 2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var gen dto.GenerateAuthCodeResponse
	decode(t, resp, &gen)
	assert.Len(t, gen.AuthCode, 6)
	assert.NotEmpty(t, gen.DeviceID)

	resp = s.do(t, http.MethodDelete, "/api/v1/auth/devices/"+gen.DeviceID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/v1/auth/devices", adminToken, nil)
	var list dto.DeviceListResponse
	decode(t, resp, &list)
	assert.Equal(t, 1, list.TotalCount, "los eliminados no se listan por defecto")

	resp = s.do(t, http.MethodGet, "/api/v1/auth/devices?includeDeleted=true", adminToken, nil)
	decode(t, resp, &list)
	assert.Equal(t, 2, list.TotalCount)
}

func TestDispositivos_IDInexistente_Retorna404(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")

	resp := s.do(t, http.MethodPut, "/api/v1/auth/devices/no-es-uuid/enable", adminToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DEVICE_NOT_FOUND", errorCode(t, resp))
}

func TestDispositivos_TokenDeDispositivoNoAdministra(t *testing.T) {
	s := newServer(t, "", nil)
	devToken := s.deviceLogin(t, "TEST123")

	resp := s.do(t, http.MethodGet, "/api/v1/auth/devices", devToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Menú
// ──────────────────────────────────────────────────────────────────────────────

func publishMenu(t *testing.T, s *testServer, adminToken, category string) int {
	t.Helper()
	body := map[string]interface{}{
		"categories": []map[string]interface{}{
			{"name": category, "items": []map[string]interface{}{{"name": "Café", "price": "2.50"}}},
		},
	}
	resp := s.do(t, http.MethodPost, "/api/v1/menu", adminToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.PublishMenuResponse
	decode(t, resp, &out)
	return out.Version
}

func TestMenu_VersionVigenteRetorna304(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")
	devToken := s.deviceLogin(t, "TEST123")

	for i, cat := range []string{"Bebidas", "Postres", "Desayunos"} {
		assert.Equal(t, i+1, publishMenu(t, s, adminToken, cat))
	}

	resp := s.do(t, http.MethodGet, "/api/v1/menu?version=3", devToken, nil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body)

	resp = s.do(t, http.MethodGet, "/api/v1/menu?version=2", devToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var menu dto.MenuResponse
	decode(t, resp, &menu)
	assert.Equal(t, 3, menu.Version)
	require.Len(t, menu.Categories, 1)
	assert.Equal(t, "Desayunos", menu.Categories[0].Name)

	resp = s.do(t, http.MethodGet, "/api/v1/menu/latest-version", devToken, nil)
	var ver dto.MenuVersionResponse
	decode(t, resp, &ver)
	assert.Equal(t, 3, ver.Version)
	assert.NotNil(t, ver.LastUpdated)
}

func TestMenu_Vacio(t *testing.T) {
	s := newServer(t, "", nil)
	devToken := s.deviceLogin(t, "TEST123")

	resp := s.do(t, http.MethodGet, "/api/v1/menu/latest-version", devToken, nil)
	var ver dto.MenuVersionResponse
	decode(t, resp, &ver)
	assert.Equal(t, 0, ver.Version)
	assert.Nil(t, ver.LastUpdated)

	resp = s.do(t, http.MethodGet, "/api/v1/menu", devToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "MENU_NOT_FOUND", errorCode(t, resp))
}

func TestMenu_VersionNoNumerica_Retorna400(t *testing.T) {
	s := newServer(t, "", nil)
	devToken := s.deviceLogin(t, "TEST123")

	resp := s.do(t, http.MethodGet, "/api/v1/menu?version=tres", devToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidParam, errorCode(t, resp))
}

func TestMenu_PublicarSinCategorias_Retorna400(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")

	resp := s.do(t, http.MethodPost, "/api/v1/menu", adminToken, dto.PublishMenuRequest{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MENU_NO_CATEGORIES", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos y reportes
// ──────────────────────────────────────────────────────────────────────────────

func orderBody(id, day, total string) map[string]interface{} {
	return map[string]interface{}{
		"order_id":     id,
		"business_day": day,
		"total":        total,
		"created_at":   day + "T12:00:00Z",
		"items": []map[string]interface{}{
			{"name": "Café", "qty": 2, "unit_price": "2.50", "subtotal": "5.00"},
		},
	}
}

func TestPedidos_BulkConsultaYComprobante(t *testing.T) {
	s := newServer(t, "", nil)
	devToken := s.deviceLogin(t, "TEST123")

	batch := []map[string]interface{}{
		orderBody("A-001", "2026-03-02", "5.00"),
		orderBody("A-002", "2026-03-02", "5.00"),
		orderBody("A-001", "2026-03-02", "9.00"),
	}
	resp := s.do(t, http.MethodPost, "/api/v1/orders/bulk", devToken, batch)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bulk dto.BulkOrderResponse
	decode(t, resp, &bulk)
	assert.Equal(t, dto.BulkSummary{Total: 3, Success: 2, Duplicate: 1}, bulk.Summary)
	require.Len(t, bulk.Results, 3)
	assert.Equal(t, dto.OrderStatusDuplicate, bulk.Results[2].Status)
	assert.NotEmpty(t, bulk.Results[0].Message)

	resp = s.do(t, http.MethodGet, "/api/v1/orders?order_id=002&page_size=10", devToken, nil)
	var page dto.OrderPage
	decode(t, resp, &page)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "A-002", page.Data[0].OrderID)
	require.Len(t, page.Data[0].Items, 1)
	assert.Equal(t, 1, page.Data[0].Items[0].LineNo)

	resp = s.do(t, http.MethodPost, "/api/v1/orders/A-001/reprint", devToken, nil)
	var reprint dto.ReprintResponse
	decode(t, resp, &reprint)
	assert.True(t, reprint.Success)
	assert.Equal(t, "5", reprint.Total.String())

	resp = s.do(t, http.MethodGet, "/api/v1/orders/A-001/receipt", devToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestPedidos_ReimpresionInexistente_Retorna404(t *testing.T) {
	s := newServer(t, "", nil)
	devToken := s.deviceLogin(t, "TEST123")

	resp := s.do(t, http.MethodPost, "/api/v1/orders/NOPE/reprint", devToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_FOUND", errorCode(t, resp))
}

func TestReportes_RolesYCSV(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")
	devToken := s.deviceLogin(t, "TEST123")
	s.createUser(t, adminToken, "gerente", "Manager")
	s.createUser(t, adminToken, "cajero", "Staff")

	resp := s.do(t, http.MethodPost, "/api/v1/orders/bulk", devToken, []map[string]interface{}{
		orderBody("R-1", "2026-03-01", "10.00"),
		orderBody("R-2", "2026-03-02", "2.50"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for name, tok := range map[string]string{"staff": s.login(t, "cajero", "secreto1"), "device": devToken} {
		resp = s.do(t, http.MethodGet, "/api/v1/reports", tok, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, name)
		resp.Body.Close()
	}

	managerToken := s.login(t, "gerente", "secreto1")
	resp = s.do(t, http.MethodGet, "/api/v1/reports?from=2026-03-02&to=2026-03-02", managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report dto.ReportResponse
	decode(t, resp, &report)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "2.5", report.Total.String())

	resp = s.do(t, http.MethodGet, "/api/v1/reports/csv", managerToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report.csv")
	raw, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "OrderId,BusinessDay,Total,CreatedAt", strings.TrimSpace(lines[0]))
}

func TestReportes_RangoInvertido_Retorna400(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")

	resp := s.do(t, http.MethodGet, "/api/v1/reports?from=2026-03-05&to=2026-03-01", adminToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_DATE_RANGE", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarios_CRUD(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")
	s.createUser(t, adminToken, "maria", "Staff")

	resp := s.do(t, http.MethodPost, "/api/v1/users", adminToken, dto.CreateUserRequest{Account: "maria", Password: "x", Role: "Staff"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	var users []dto.UserResponse
	decode(t, resp, &users)
	require.Len(t, users, 2)
	var mariaID string
	for _, u := range users {
		if u.Account == "maria" {
			mariaID = u.ID
		}
	}
	require.NotEmpty(t, mariaID)

	role := "Manager"
	resp = s.do(t, http.MethodPut, "/api/v1/users/"+mariaID, adminToken, dto.UpdateUserRequest{Role: &role})
	var updated dto.UserMutationResponse
	decode(t, resp, &updated)
	require.NotNil(t, updated.User)
	assert.Equal(t, "Manager", updated.User.Role)

	resp = s.do(t, http.MethodDelete, "/api/v1/users/"+mariaID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodDelete, "/api/v1/users/"+mariaID, adminToken, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsuarios_ManagerNoAdministra(t *testing.T) {
	s := newServer(t, "", nil)
	adminToken := s.login(t, "admin", "admin123")
	s.createUser(t, adminToken, "gerente", "Manager")

	resp := s.do(t, http.MethodGet, "/api/v1/users", s.login(t, "gerente", "secreto1"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthz_ReflejaEstadoDeLaBase(t *testing.T) {
	ok := newServer(t, "", pingerFunc(func(context.Context) error { return nil }))
	resp := ok.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	down := newServer(t, "", pingerFunc(func(context.Context) error { return errors.New("sin conexión") }))
	resp = down.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()

	resp = down.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

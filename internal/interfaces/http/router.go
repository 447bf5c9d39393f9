package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/whiteslip-api/internal/application/auth"
	"github.com/jhoicas/whiteslip-api/internal/application/ordering"
	"github.com/jhoicas/whiteslip-api/internal/application/usecase"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/pkg/i18n"
)

// Pinger verifica la conexión a la base (lo implementa *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DeviceUC  *auth.DeviceUseCase
	LoginUC   *auth.LoginUseCase
	Gate      DeviceAuthorizer
	Verifier  TokenVerifier
	UserUC    *usecase.UserUseCase
	MenuUC    *usecase.MenuUseCase
	OrderUC   *ordering.OrderUseCase
	ReportUC  *ordering.ReportUseCase
	DB        Pinger // nil = /healthz sin chequeo de base
	AuthRate  string // formato ulule; vacío = sin límite
	Translate *i18n.Translator
	Log       zerolog.Logger
	Service   string
}

// Router registra las rutas de la API bajo /api/v1 y los health checks.
func Router(app *fiber.App, deps RouterDeps) error {
	tr := deps.Translate
	if tr == nil {
		tr = i18n.New()
	}
	r := NewResponder(tr, deps.Log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := deps.DB.Ping(ctx); err != nil {
				r.log.Error().Err(err).Msg("healthz: base de datos no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	authn := AuthMiddleware(deps.Verifier, r)
	admin := RequireRole(entity.RoleAdmin, r)
	device := RequireActiveDevice(deps.Gate, r)

	// Auth (público, con límite por IP)
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthRate != "" {
		h, err := RateLimit(deps.AuthRate, r)
		if err != nil {
			return err
		}
		limit = h
	}
	authHandler := NewAuthHandler(deps.DeviceUC, deps.LoginUC, r)
	authGroup := api.Group("/auth")
	authGroup.Post("/", limit, authHandler.Authenticate)
	authGroup.Post("/user-login", limit, authHandler.UserLogin)

	// Dispositivos (Admin)
	deviceHandler := NewDeviceHandler(deps.DeviceUC, r)
	authGroup.Post("/generate-auth-code", authn, admin, deviceHandler.GenerateAuthCode)
	authGroup.Get("/devices", authn, admin, deviceHandler.List)
	authGroup.Put("/devices/:id/disable", authn, admin, deviceHandler.Disable)
	authGroup.Put("/devices/:id/enable", authn, admin, deviceHandler.Enable)
	authGroup.Delete("/devices/:id", authn, admin, deviceHandler.Delete)

	// Menú
	menuHandler := NewMenuHandler(deps.MenuUC, r)
	menu := api.Group("/menu", authn)
	menu.Get("/latest-version", device, menuHandler.LatestVersion)
	menu.Get("/", device, menuHandler.Get)
	menu.Post("/", admin, menuHandler.Publish)

	// Pedidos (dispositivo activo)
	orderHandler := NewOrderHandler(deps.OrderUC, r)
	orders := api.Group("/orders", authn, device)
	orders.Post("/bulk", orderHandler.Bulk)
	orders.Get("/", orderHandler.List)
	orders.Post("/:id/reprint", orderHandler.Reprint)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Reportes (Manager o superior)
	reportHandler := NewReportHandler(deps.ReportUC, r)
	reports := api.Group("/reports", authn, RequireRole(entity.RoleManager, r))
	reports.Get("/", reportHandler.Report)
	reports.Get("/csv", reportHandler.CSV)

	// Usuarios (Admin)
	userHandler := NewUserHandler(deps.UserUC, r)
	users := api.Group("/users", authn, admin)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	return nil
}

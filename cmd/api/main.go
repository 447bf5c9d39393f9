package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"

	_ "github.com/jhoicas/whiteslip-api/docs"
	"github.com/jhoicas/whiteslip-api/internal/application/auth"
	"github.com/jhoicas/whiteslip-api/internal/application/ordering"
	"github.com/jhoicas/whiteslip-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/whiteslip-api/internal/infrastructure/pdf"
	"github.com/jhoicas/whiteslip-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/whiteslip-api/internal/interfaces/http"
	"github.com/jhoicas/whiteslip-api/pkg/config"
	"github.com/jhoicas/whiteslip-api/pkg/i18n"
	"github.com/jhoicas/whiteslip-api/pkg/jwt"
	"github.com/jhoicas/whiteslip-api/pkg/logger"
	"github.com/jhoicas/whiteslip-api/pkg/password"
)

func main() {
	flags := pflag.NewFlagSet("whiteslip-api", pflag.ExitOnError)
	migrateOnly := flags.Bool("migrate-only", false, "aplicar migraciones y salir")
	skipSeed := flags.Bool("skip-seed", false, "no crear admin ni dispositivo de prueba")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("esquema al día")
	if *migrateOnly {
		return
	}

	deviceRepo := postgres.NewDeviceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	hasher := password.NewBcryptHasher(cfg.App.BcryptCost)

	if !*skipSeed {
		err := usecase.Bootstrap(ctx, userRepo, deviceRepo, hasher, usecase.BootstrapConfig{
			AdminAccount:  cfg.Seed.AdminAccount,
			AdminPassword: cfg.Seed.AdminPassword,
			TestDevice:    cfg.Seed.TestDevice,
		}, log.Component("seed"))
		if err != nil {
			log.Fatal().Err(err).Msg("datos iniciales")
		}
	}

	issuer, err := jwt.NewIssuer(jwt.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	deviceUC := auth.NewDeviceUseCase(deviceRepo, issuer, log.Component("devices"))
	loginUC := auth.NewLoginUseCase(userRepo, hasher, issuer, log.Component("login"))
	gate := auth.NewDeviceGate(deviceRepo, log.Component("device_gate"))
	userUC := usecase.NewUserUseCase(userRepo, hasher, log.Component("users"))
	menuUC := usecase.NewMenuUseCase(menuRepo, log.Component("menu"))
	orderUC := ordering.NewOrderUseCase(txRunner, orderRepo, infrapdf.NewReceiptGenerator(cfg.App.Name), log.Zerolog())
	reportUC := ordering.NewReportUseCase(orderRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Accept-Language, Authorization",
		ExposeHeaders: httpRouter.HeaderTraceID,
	}))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerEnable {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "WhiteSlip API",
		}))
	}

	err = httpRouter.Router(app, httpRouter.RouterDeps{
		DeviceUC:  deviceUC,
		LoginUC:   loginUC,
		Gate:      gate,
		Verifier:  issuer,
		UserUC:    userUC,
		MenuUC:    menuUC,
		OrderUC:   orderUC,
		ReportUC:  reportUC,
		DB:        pool,
		AuthRate:  cfg.RateLimit.Auth,
		Translate: i18n.New(),
		Log:       log.Zerolog(),
		Service:   cfg.App.Name,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/erp-kardex/internal/application/auth"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/application/orders"
	"github.com/jhoicas/erp-kardex/internal/application/purchasing"
	"github.com/jhoicas/erp-kardex/internal/application/usecase"
	infrapdf "github.com/jhoicas/erp-kardex/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/scheduler"
	infraxlsx "github.com/jhoicas/erp-kardex/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/erp-kardex/internal/interfaces/http"
	"github.com/jhoicas/erp-kardex/pkg/config"
	"github.com/jhoicas/erp-kardex/pkg/logger"
)

//go:generate go tool swag init -d ../.. -g cmd/api/main.go -o ../../docs

const swaggerFile = "./docs/swagger.json"

// @title                       ERP Kardex API
// @version                     1.0
// @description                 Inventario multiempresa con Kardex, órdenes de venta y compras.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	store := postgres.NewStore(pool)
	txRunner := postgres.NewTxRunner(pool, postgres.WithLockTimeout(cfg.DB.LockTimeout))
	engine := kardex.NewEngine()

	productUC := usecase.NewProductUseCase(txRunner, store, engine)
	employeeUC := usecase.NewEmployeeUseCase(store.Employees())
	authUC := auth.NewAuthUseCase(txRunner, store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log.Component("http"), cfg.App.IsDevelopment()),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(log.FiberMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs (requiere go generate ./cmd/api)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "ERP Kardex API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      usecase.NewCompanyUseCase(store.Companies()),
		ProductUC:      productUC,
		CustomerUC:     usecase.NewCustomerUseCase(txRunner, store),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers()),
		EmployeeUC:     employeeUC,
		ServiceOrderUC: usecase.NewServiceOrderUseCase(txRunner, store),
		KardexUC:       kardex.NewUseCase(txRunner, store, engine, infraxlsx.NewKardexExporter()),
		Orders:         orders.NewService(txRunner, store, engine),
		Purchasing:     purchasing.NewService(txRunner, store, engine, infrapdf.NewMarotoPDFGenerator()),
		JWTSecret:      cfg.JWT.Secret,
	})

	// Revisión periódica de stock bajo
	var sched *scheduler.Scheduler
	if cfg.Scheduler.LowStockEnabled {
		sched = scheduler.New(cfg.Scheduler.LowStockCron, productUC, log.Zerolog())
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
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

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

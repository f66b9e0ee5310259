package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/makhzan/school-warehouse-api/internal/application/audit"
	"github.com/makhzan/school-warehouse-api/internal/application/auth"
	"github.com/makhzan/school-warehouse-api/internal/application/movement"
	"github.com/makhzan/school-warehouse-api/internal/application/reconcile"
	"github.com/makhzan/school-warehouse-api/internal/application/usecase"
	infrapdf "github.com/makhzan/school-warehouse-api/internal/infrastructure/pdf"
	"github.com/makhzan/school-warehouse-api/internal/infrastructure/postgres"
	"github.com/makhzan/school-warehouse-api/internal/infrastructure/redisbridge"
	httpRouter "github.com/makhzan/school-warehouse-api/internal/interfaces/http"
	"github.com/makhzan/school-warehouse-api/internal/notify"
	"github.com/makhzan/school-warehouse-api/pkg/config"
	"github.com/makhzan/school-warehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("load timezone")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	auditRepo := postgres.NewDailyAuditRepository(pool)
	reconcileRepo := postgres.NewReconcileRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := notify.NewHub(cfg.Notify.BufferSize, log)

	// Redis bridge: only wired when REDIS_ADDR is set. Single-instance
	// deployments run with the in-process hub alone.
	if cfg.Redis.Addr != "" {
		broadcaster, err := redisbridge.New(ctx, cfg.Redis, cfg.Notify.Channel, hub, log)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect to Redis")
		}
		defer broadcaster.Close()
		log.Info().Str("channel", cfg.Notify.Channel).Msg("redis notification bridge enabled")
	}

	authUC := auth.NewUseCase(userRepo, warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, warehouseRepo, categoryRepo, txRepo)
	movementUC := movement.NewUseCase(itemRepo, txRepo, userRepo, hub, loc)
	reconcileUC := reconcile.NewUseCase(reconcileRepo, warehouseRepo)
	auditUC := audit.NewUseCase(txRunner, itemRepo, warehouseRepo, userRepo, auditRepo, hub, loc)

	reportGen := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "School Warehouse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		WarehouseUC: warehouseUC,
		CategoryUC:  categoryUC,
		ItemUC:      itemUC,
		MovementUC:  movementUC,
		ReconcileUC: reconcileUC,
		AuditUC:     auditUC,
		ReportGen:   reportGen,
		Hub:         hub,
		Location:    loc,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

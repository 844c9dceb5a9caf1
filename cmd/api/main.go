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

	"github.com/mfbgull/mini-erp-sub001/internal/application/ledger"
	"github.com/mfbgull/mini-erp-sub001/internal/application/production"
	"github.com/mfbgull/mini-erp-sub001/internal/application/query"
	"github.com/mfbgull/mini-erp-sub001/internal/application/usecase"
	"github.com/mfbgull/mini-erp-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/mfbgull/mini-erp-sub001/internal/interfaces/http"
	"github.com/mfbgull/mini-erp-sub001/pkg/config"
	"github.com/mfbgull/mini-erp-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	counterRepo := postgres.NewCounterRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := usecase.NewItemUseCase(itemRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	bomUC := usecase.NewBOMUseCase(bomRepo, itemRepo, counterRepo)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, itemRepo, warehouseRepo)
	queryUC := query.NewQueryUseCase(stockRepo, movementRepo)
	productionUC := production.NewProductionUseCase(
		txRunner, bomRepo, itemRepo, warehouseRepo,
		stockRepo, movementRepo, productionRepo,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mini ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		WarehouseUC:  warehouseUC,
		BOMUC:        bomUC,
		LedgerUC:     ledgerUC,
		QueryUC:      queryUC,
		ProductionUC: productionUC,
	})

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

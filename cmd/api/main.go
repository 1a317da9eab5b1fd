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
	"github.com/ostramar/ostramar-api/internal/application/billing"
	"github.com/ostramar/ostramar-api/internal/application/orders"
	"github.com/ostramar/ostramar-api/internal/application/stats"
	"github.com/ostramar/ostramar-api/internal/application/stock"
	"github.com/ostramar/ostramar-api/internal/application/traceability"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
	"github.com/ostramar/ostramar-api/internal/infrastructure/memory"
	"github.com/ostramar/ostramar-api/internal/infrastructure/postgres"
	httpRouter "github.com/ostramar/ostramar-api/internal/interfaces/http"
	"github.com/ostramar/ostramar-api/pkg/config"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Ledger store: postgres en operación normal, memoria para desarrollo local.
	var (
		stockRepo   repository.StockRepository
		orderRepo   repository.OrderRepository
		batchRepo   repository.BatchRepository
		invoiceRepo repository.InvoiceRepository
		statsRepo   repository.StatsRepository
	)
	if cfg.Storage.Driver == "memory" {
		stockRepo = memory.NewStockRepository()
		orderRepo = memory.NewOrderRepository()
		batchRepo = memory.NewBatchRepository()
		invoiceRepo = memory.NewInvoiceRepository()
		statsRepo = memory.NewStatsRepository()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		stockRepo = postgres.NewStockRepository(pool)
		orderRepo = postgres.NewOrderRepository(pool)
		batchRepo = postgres.NewBatchRepository(pool)
		invoiceRepo = postgres.NewInvoiceRepository(pool)
		statsRepo = postgres.NewStatsRepository(pool)
	}

	reservations := stock.NewReservationService(stockRepo, log, cfg.Engine.CASMaxRetries)
	stockUC := stock.NewUseCase(stockRepo, orderRepo)
	orderUC := orders.NewLifecycleUseCase(orderRepo, reservations, log)
	chainUC := traceability.NewChainUseCase(batchRepo, log)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo)

	aggregator := stats.NewAggregator(invoiceRepo, stockRepo, orderRepo, statsRepo, log)
	statsWorker := stats.NewWorker(aggregator, cfg.Stats.QueueSize, cfg.Stats.Interval, log)
	statsWorker.Start(ctx)
	defer statsWorker.Stop()

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
		Title:    "OstraMar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:      stockUC,
		Reservations: reservations,
		OrderUC:      orderUC,
		ChainUC:      chainUC,
		InvoiceUC:    invoiceUC,
		Aggregator:   aggregator,
		StatsWorker:  statsWorker,
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

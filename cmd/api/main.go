package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	stockuc "github.com/ecovale/recicla-api/internal/application/stock"
	"github.com/ecovale/recicla-api/internal/application/usecase"
	"github.com/ecovale/recicla-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecovale/recicla-api/internal/interfaces/http"
	"github.com/ecovale/recicla-api/pkg/config"
	"github.com/ecovale/recicla-api/pkg/logger"
)

// runMigrations aplica as migrações goose usando o driver database/sql do pgx.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("aplicar migrações")
	}
	log.Info().Msg("migrações aplicadas")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	orderRepo := postgres.NewCollectionOrderRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	staffRepo := postgres.NewStaffRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	neighborhoodRepo := postgres.NewNeighborhoodRepository(pool)

	txRunner := postgres.NewTxRunner(pool, cfg.Stock.LockTimeoutMS)
	stockUC := stockuc.NewUseCase(txRunner, staffRepo, clientRepo, partnerRepo, log)
	stockQueries := stockuc.NewQueryUseCase(materialRepo, receiptRepo, shipmentRepo, orderRepo)

	materialUC := usecase.NewMaterialUseCase(materialRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	staffUC := usecase.NewStaffUseCase(staffRepo)
	partnerUC := usecase.NewPartnerUseCase(partnerRepo)
	catalogUC := usecase.NewCatalogUseCase(roleRepo, neighborhoodRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Stock.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:        stockUC,
		StockQueries: stockQueries,
		MaterialUC:   materialUC,
		ClientUC:     clientUC,
		StaffUC:      staffUC,
		PartnerUC:    partnerUC,
		CatalogUC:    catalogUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP iniciado")

	<-ctx.Done()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown do servidor HTTP")
	}
	log.Info().Msg("encerramento concluído")
}

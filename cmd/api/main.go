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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Traslados-api/internal/application/auth"
	"github.com/jhoicas/Traslados-api/internal/application/inventory"
	"github.com/jhoicas/Traslados-api/internal/application/shipment"
	"github.com/jhoicas/Traslados-api/internal/application/usecase"
	"github.com/jhoicas/Traslados-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Traslados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Traslados-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Traslados-api/internal/infrastructure/searchindex"
	httpRouter "github.com/jhoicas/Traslados-api/internal/interfaces/http"
	"github.com/jhoicas/Traslados-api/pkg/config"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	confirmationRepo := postgres.NewConfirmationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Espejo de stock en Redis (opcional: REDIS_ADDR vacío lo desactiva).
	var indexer inventory.StockIndexer
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, espejo de stock desactivado")
		} else {
			indexer = searchindex.NewRedisStockIndexer(rdb)
			defer rdb.Close()
		}
	}

	ledger := inventory.NewStockLedger(txRunner, stockRepo, itemRepo, warehouseRepo, indexer, log)

	publisher := shipment.NewPublisher(cfg.Shipment.EventBuffer, log)
	manifestGen := infrapdf.NewMarotoManifestGenerator()
	workflow := shipment.NewWorkflow(
		shipment.WorkflowConfig{
			MinLeadDays:         cfg.Shipment.MinLeadDays,
			AllowEmptyTransfers: cfg.Shipment.AllowEmptyTransfers,
		},
		txRunner,
		shipmentRepo, transferRepo, stockRepo, confirmationRepo,
		itemRepo, warehouseRepo, userRepo,
		publisher, manifestGen, log,
	)
	engine := shipment.NewConfirmationEngine(txRunner, ledger, log)

	// Notificaciones: correo real si hay SMTP, solo log si no.
	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTP)
	} else {
		mailer = notify.NewLogMailer(log)
	}
	dispatcher := notify.NewDispatcher(publisher.Events(), userRepo, mailer, log)
	go dispatcher.Run()

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Traslados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		ItemUC:      itemUC,
		Ledger:      ledger,
		Workflow:    workflow,
		Engine:      engine,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

	// Cerrar el canal de eventos para que el despachador drene y termine.
	publisher.Close()

	log.Info().Msg("aplicación detenida")
}

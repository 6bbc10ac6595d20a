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

	_ "github.com/jhoicas/dropforge-api/docs"
	"github.com/jhoicas/dropforge-api/internal/application/auth"
	"github.com/jhoicas/dropforge-api/internal/application/order"
	"github.com/jhoicas/dropforge-api/internal/application/supplier"
	"github.com/jhoicas/dropforge-api/internal/application/usecase"
	"github.com/jhoicas/dropforge-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/dropforge-api/internal/infrastructure/pdf"
	"github.com/jhoicas/dropforge-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/dropforge-api/internal/interfaces/http"
	"github.com/jhoicas/dropforge-api/pkg/config"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// @title        DropForge API
// @version      1.0
// @description  Back-office de dropshipping: catálogo sincronizado con el proveedor, pedidos contra entrega y panel.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es requerido")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	dashboardUC := usecase.NewDashboardUseCase(orderRepo, productRepo)
	slips := infrapdf.NewMarotoSlipGenerator("DropForge")
	orderUC := order.NewOrderUseCase(orderRepo, productRepo, txRunner, slips, log)

	// Feed del proveedor: sin URL se usa el catálogo estático
	var feedClient supplier.FeedClient = feed.NewStaticFeed()
	if cfg.Supplier.FeedURL != "" {
		httpFeed, err := feed.NewHTTPFeed(cfg.Supplier.FeedURL, cfg.Supplier.FeedFormat, cfg.Supplier.FeedTimeout, log)
		if err != nil {
			log.Fatal().Err(err).Msg("feed del proveedor")
		}
		feedClient = httpFeed
	}
	syncUC := supplier.NewSyncUseCase(feedClient, productRepo, log)

	scheduler := supplier.NewScheduler(syncUC, cfg.Supplier.SyncInterval, cfg.Supplier.SyncOnStartup, supplier.RealClock{}, log)
	scheduler.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DropForge API",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("DropForge API is running...")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		Syncer:      syncUC,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
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

	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

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

	"github.com/tu-usuario/pinturas-b2b/internal/application/analytics"
	"github.com/tu-usuario/pinturas-b2b/internal/application/auth"
	"github.com/tu-usuario/pinturas-b2b/internal/application/cart"
	"github.com/tu-usuario/pinturas-b2b/internal/application/catalog"
	"github.com/tu-usuario/pinturas-b2b/internal/application/chat"
	"github.com/tu-usuario/pinturas-b2b/internal/application/document"
	"github.com/tu-usuario/pinturas-b2b/internal/application/order"
	"github.com/tu-usuario/pinturas-b2b/internal/application/ports"
	"github.com/tu-usuario/pinturas-b2b/internal/application/stock"
	"github.com/tu-usuario/pinturas-b2b/internal/application/users"
	infraai "github.com/tu-usuario/pinturas-b2b/internal/infrastructure/ai"
	"github.com/tu-usuario/pinturas-b2b/internal/infrastructure/dadata"
	infrapdf "github.com/tu-usuario/pinturas-b2b/internal/infrastructure/pdf"
	"github.com/tu-usuario/pinturas-b2b/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pinturas-b2b/internal/interfaces/http"
	"github.com/tu-usuario/pinturas-b2b/pkg/config"
	"github.com/tu-usuario/pinturas-b2b/pkg/logger"
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
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	analysisRepo := postgres.NewAnalysisRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	chatRepo := postgres.NewChatRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Verificación de contrapartes por INN — deshabilitada sin token.
	var lookup ports.CompanyLookupService
	if cfg.DaData.Token != "" {
		lookup = dadata.NewClient(cfg.DaData.Token, cfg.DaData.BaseURL)
	} else {
		log.Warn().Msg("DADATA_TOKEN no configurado: registro sin verificación de INN")
	}

	// Asistente del chat — sin API key el chat queda en modo solo-agentes.
	var assistant ports.AssistantService
	if cfg.Assistant.APIKey != "" {
		assistant = infraai.NewOpenRouterService(infraai.Config{
			APIKey:   cfg.Assistant.APIKey,
			Models:   cfg.Assistant.Models,
			BaseURL:  cfg.Assistant.BaseURL,
			Cooldown: time.Duration(cfg.Assistant.CooldownSeconds) * time.Second,
		}, log)
	} else {
		log.Warn().Msg("OPENROUTER_API_KEY no configurado: chat sin asistente")
	}

	authUC := auth.NewAuthUseCase(userRepo, lookup, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	catalogUC := catalog.NewCatalogUseCase(productRepo, log)
	stockUC := stock.NewStockUseCase(batchRepo, productRepo, analysisRepo, log)
	cartUC := cart.NewCartUseCase(cartRepo, productRepo, batchRepo, log)
	orderUC := order.NewOrderUseCase(txRunner, orderRepo, productRepo, batchRepo, log)
	chatUC := chat.NewChatUseCase(chatRepo, userRepo, assistant, cfg.Assistant.HistoryTurns, log)
	userUC := users.NewUserUseCase(userRepo, log)
	analyticsUC := analytics.NewAnalyticsUseCase(analyticsRepo)
	documentUC := document.NewDocumentUseCase(orderUC, userRepo, infrapdf.NewMarotoDocumentGenerator())

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
		Title:    "Pinturas B2B API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		StockUC:     stockUC,
		CartUC:      cartUC,
		OrderUC:     orderUC,
		ChatUC:      chatUC,
		UserUC:      userUC,
		AnalyticsUC: analyticsUC,
		DocumentUC:  documentUC,
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

	log.Info().Msg("aplicación detenida")
}

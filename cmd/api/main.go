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

	_ "github.com/jhoicas/tienda-api/docs"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/prompt"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	infraai "github.com/jhoicas/tienda-api/internal/infrastructure/ai"
	"github.com/jhoicas/tienda-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// @title        Tienda API
// @version      1.0
// @description  API de la tienda demo: catálogo público, CRUD del panel y prompt de comandos en lenguaje natural.
// @BasePath     /
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

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Pipeline del prompt: resolver → validador → ejecutor → bridge LLM
	resolver := prompt.NewResolver(categoryRepo, productRepo)
	validator := prompt.NewValidator(resolver)
	executor := prompt.NewExecutor(txRunner, categoryRepo, productRepo)

	groqSvc := infraai.NewGroqService(cfg.AI.GroqAPIKey, cfg.AI.GroqModel)
	if cfg.AI.GroqAPIKey == "" {
		log.Warn().Msg("GROQ_API_KEY no configurado: el prompt solo acepta comandos JSON")
	}
	bridge := prompt.NewBridge(groqSvc, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	promptSvc := prompt.NewService(validator, executor, bridge)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, txRunner)
	catalogUC := usecase.NewCatalogUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	feedBuilder := feed.NewBuilder(cfg.App.Name)
	pdfGen := infrapdf.NewCatalogGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PromptSvc:   promptSvc,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		CatalogUC:   catalogUC,
		AuthUC:      authUC,
		FeedBuilder: feedBuilder,
		PDFGen:      pdfGen,
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

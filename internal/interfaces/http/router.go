package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/prompt"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/feed"
	"github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PromptSvc   *prompt.Service
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	CatalogUC   *usecase.CatalogUseCase
	AuthUC      *auth.AuthUseCase
	FeedBuilder *feed.Builder
	PDFGen      *pdf.CatalogGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Prompt (público: es la interfaz principal de la demo)
	promptHandler := NewPromptHandler(deps.PromptSvc)
	api.Post("/prompt", promptHandler.Handle)

	// Catálogo público
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.FeedBuilder, deps.PDFGen)
	api.Get("/catalog", catalogHandler.List)
	api.Get("/catalog/feed.xml", catalogHandler.Feed)
	api.Get("/catalog/export.pdf", catalogHandler.ExportPDF)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole("admin"), categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)
}

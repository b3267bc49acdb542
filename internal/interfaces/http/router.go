package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pinturas-b2b/internal/application/analytics"
	"github.com/tu-usuario/pinturas-b2b/internal/application/auth"
	"github.com/tu-usuario/pinturas-b2b/internal/application/cart"
	"github.com/tu-usuario/pinturas-b2b/internal/application/catalog"
	"github.com/tu-usuario/pinturas-b2b/internal/application/chat"
	"github.com/tu-usuario/pinturas-b2b/internal/application/document"
	"github.com/tu-usuario/pinturas-b2b/internal/application/order"
	"github.com/tu-usuario/pinturas-b2b/internal/application/stock"
	"github.com/tu-usuario/pinturas-b2b/internal/application/users"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.CatalogUseCase
	StockUC     *stock.StockUseCase
	CartUC      *cart.CartUseCase
	OrderUC     *order.OrderUseCase
	ChatUC      *chat.ChatUseCase
	UserUC      *users.UserUseCase
	AnalyticsUC *analytics.AnalyticsUseCase
	DocumentUC  *document.DocumentUseCase
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
	authGroup.Get("/company", authHandler.VerifyCompany)

	// Catálogo: lectura pública
	productHandler := NewProductHandler(deps.CatalogUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Almacén: lectura para cualquier usuario autenticado
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stock", stockHandler.ListAvailable)
	protected.Get("/products/:id/batches", stockHandler.ListForProduct)

	// Perfil propio
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/profile", userHandler.Me)
	protected.Put("/profile", userHandler.UpdateMe)

	// Carrito (comprador)
	cartGroup := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.List)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.Add)
	cartGroup.Patch("/items", cartHandler.Change)
	cartGroup.Delete("/items", cartHandler.Remove)

	// Pedidos propios y documentos
	orderHandler := NewOrderHandler(deps.OrderUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.ListMine)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Get("/:id/invoice", documentHandler.Invoice)
	ordersGroup.Get("/:id/delivery-note", documentHandler.DeliveryNote)

	// Chat del comprador
	chatHandler := NewChatHandler(deps.ChatUC)
	chatGroup := protected.Group("/chat")
	chatGroup.Post("/messages", chatHandler.PostMessage)
	chatGroup.Get("/messages", chatHandler.History)

	// Back office (manager y admin)
	manager := protected.Group("/manager", RequireRole(entity.RoleManager, entity.RoleAdmin))
	manager.Get("/orders", orderHandler.ListAll)
	manager.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	manager.Get("/chat/threads", chatHandler.ListThreads)
	manager.Get("/chat/threads/:userId", chatHandler.GetThread)
	manager.Post("/chat/threads/:userId/messages", chatHandler.PostAgentMessage)
	manager.Put("/chat/threads/:userId/assistant", chatHandler.SetAssistant)
	manager.Post("/chat/threads/:userId/assign", chatHandler.Assign)
	manager.Post("/chat/threads/:userId/read", chatHandler.MarkRead)

	// Panel de analítica (manager y admin)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup := manager.Group("/analytics")
	analyticsGroup.Get("/summary", analyticsHandler.Summary)
	analyticsGroup.Get("/sales", analyticsHandler.SalesTrend)
	analyticsGroup.Get("/products", analyticsHandler.ProductPopularity)
	analyticsGroup.Get("/statuses", analyticsHandler.OrderStatuses)
	analyticsGroup.Get("/stock-by-product", analyticsHandler.StockByProduct)
	analyticsGroup.Get("/stock-by-color", analyticsHandler.StockByColor)
	analyticsGroup.Get("/user-activity", analyticsHandler.UserActivity)

	// Gestión de catálogo y almacén (manager y admin)
	managerCatalog := protected.Group("/", RequireRole(entity.RoleManager, entity.RoleAdmin))
	managerCatalog.Post("/products", productHandler.Create)
	managerCatalog.Put("/products/:id", productHandler.Update)
	managerCatalog.Patch("/products/:id/price", productHandler.UpdatePrice)
	managerCatalog.Delete("/products/:id", productHandler.Delete)
	managerCatalog.Get("/batches", stockHandler.ListAll)
	managerCatalog.Post("/batches", stockHandler.CreateBatch)
	managerCatalog.Patch("/batches/:id", stockHandler.AdjustBatch)
	managerCatalog.Delete("/batches/:id", stockHandler.DeleteBatch)
	managerCatalog.Put("/batches/:id/analysis", stockHandler.UpsertAnalysis)
	managerCatalog.Get("/batches/:id/analysis", stockHandler.GetAnalysis)

	// Administración de cuentas (solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)
}

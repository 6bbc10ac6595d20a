package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dropforge-api/internal/application/auth"
	"github.com/jhoicas/dropforge-api/internal/application/order"
	"github.com/jhoicas/dropforge-api/internal/application/usecase"
	"github.com/jhoicas/dropforge-api/internal/domain/policy"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	OrderUC     *order.OrderUseCase
	DashboardUC *usecase.DashboardUseCase
	Syncer      catalogSyncer
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Users
	authHandler := NewAuthHandler(deps.AuthUC)
	users := api.Group("/users")
	users.Post("/", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/me", requireAuth, Authorize(policy.ActionViewProfile), authHandler.Me)
	users.Get("/profile", requireAuth, Authorize(policy.ActionViewProfile), authHandler.Me)
	users.Put("/profile", requireAuth, Authorize(policy.ActionUpdateProfile), authHandler.UpdateProfile)
	users.Get("/", requireAuth, Authorize(policy.ActionListUsers), authHandler.ListUsers)

	// Products (público)
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Orders; /myorders antes de /:id
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", requireAuth)
	orders.Post("/", Authorize(policy.ActionCreateOrder), orderHandler.Create)
	orders.Get("/myorders", Authorize(policy.ActionListOwnOrders), orderHandler.ListMine)
	orders.Get("/", Authorize(policy.ActionListAllOrders), orderHandler.ListAll)
	orders.Get("/:id", Authorize(policy.ActionReadOrder), orderHandler.GetByID)
	orders.Put("/:id/status", Authorize(policy.ActionUpdateOrderStatus), orderHandler.UpdateStatus)
	orders.Get("/:id/slip", Authorize(policy.ActionPrintSlip), orderHandler.Slip)

	// Supplier
	supplierHandler := NewSupplierHandler(deps.Syncer, deps.Logger)
	api.Post("/supplier/sync", requireAuth, Authorize(policy.ActionSyncCatalog), supplierHandler.Sync)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireAuth, Authorize(policy.ActionViewDashboard), dashboardHandler.GetSummary)
}

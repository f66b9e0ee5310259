package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/makhzan/school-warehouse-api/internal/application/audit"
	"github.com/makhzan/school-warehouse-api/internal/application/auth"
	"github.com/makhzan/school-warehouse-api/internal/application/movement"
	"github.com/makhzan/school-warehouse-api/internal/application/reconcile"
	"github.com/makhzan/school-warehouse-api/internal/application/usecase"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/notify"
)

// RouterDeps bundles everything the router wires into handlers.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CategoryUC  *usecase.CategoryUseCase
	ItemUC      *usecase.ItemUseCase
	MovementUC  *movement.UseCase
	ReconcileUC *reconcile.UseCase
	AuditUC     *audit.UseCase
	ReportGen   ReportGenerator
	Hub         *notify.Hub
	Location    *time.Location
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (admin only; registration included)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", authHandler.Register)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.ReconcileUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)
	warehouses.Get("/:id/summary", warehouseHandler.Summary)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.MovementUC, deps.ReconcileUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-inventory", itemHandler.LowInventory)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)
	items.Get("/:id/transactions", itemHandler.Transactions)

	// Movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/issue", movementHandler.Issue)
	movements.Post("/return", movementHandler.Return)
	movements.Post("/exchange", movementHandler.Exchange)

	// Daily audits
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC, deps.ReportGen, deps.Location)
	audits.Post("/", auditHandler.Create)
	audits.Get("/", auditHandler.List)
	audits.Get("/report.pdf", auditHandler.Report)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.ReconcileUC)
	dashboard.Get("/distribution", dashboardHandler.Distribution)
	dashboard.Get("/transaction-types", dashboardHandler.TransactionTypes)

	// Notifications feed
	notificationHandler := NewNotificationHandler(deps.Hub)
	protected.Get("/notifications", notificationHandler.Recent)
}

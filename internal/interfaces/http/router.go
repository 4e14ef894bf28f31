package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-pro/internal/application/analytics"
	appinventory "github.com/jhoicas/almacen-pro/internal/application/inventory"
	"github.com/jhoicas/almacen-pro/internal/application/purchasing"
	"github.com/jhoicas/almacen-pro/internal/application/usecase"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC        *usecase.UserUseCase
	SupplierUC    *usecase.SupplierUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	InventoryUC   *usecase.InventoryUseCase
	AdjustUC      *appinventory.AdjustQuantityUseCase
	PurchaseUC    *purchasing.PurchaseOrderUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
	WebhookSecret string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Webhook del proveedor de identidad (público, autenticado por firma HMAC)
	webhookHandler := NewWebhookHandler(deps.UserUC, deps.WebhookSecret, deps.Logger)
	api.Post("/webhooks/identity", webhookHandler.HandleIdentityEvent)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Users (protegido; cambios de rol solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id/role", adminOnly, userHandler.UpdateRole)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", staff, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", staff, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", staff, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", staff, warehouseHandler.Update)
	warehouses.Get("/:id/capacity", warehouseHandler.Capacity)

	// Inventory (protegido; ajustes de stock solo admin/manager)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.AdjustUC)
	invGroup.Post("/", staff, inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Put("/:id", staff, inventoryHandler.Update)
	invGroup.Get("/:id/movements", inventoryHandler.Movements)
	invGroup.Post("/:id/adjust", staff, inventoryHandler.Adjust)

	// Purchase orders (protegido; aprobación solo admin/manager)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", staff, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/approve", staff, purchaseHandler.Approve)
	purchases.Post("/:id/receive", staff, purchaseHandler.Receive)
	purchases.Post("/:id/cancel", staff, purchaseHandler.Cancel)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/recent-activity", dashboardHandler.RecentActivity)
}

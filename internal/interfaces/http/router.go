package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el montaje de rutas.
type RouterDeps struct {
	JWTSecret string

	AuthHandler      *AuthHandler
	ProductHandler   *ProductHandler
	WarehouseHandler *WarehouseHandler
	LocationHandler  *LocationHandler
	OperationHandler *OperationHandler
	DeliveryHandler  *DeliveryHandler
	AuditHandler     *AuditHandler
	DashboardHandler *DashboardHandler
}

// Router monta todas las rutas de la API. Todo lo que no sea auth o health va
// detrás del middleware JWT.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas públicas
	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", deps.AuthHandler.Login)

	// Rutas protegidas
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	products.Post("", deps.ProductHandler.Create)
	products.Get("", deps.ProductHandler.List)
	products.Get("/:id", deps.ProductHandler.GetByID)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)
	products.Get("/:id/ledger", deps.AuditHandler.ListLedger)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("", deps.WarehouseHandler.Create)
	warehouses.Get("", deps.WarehouseHandler.List)
	warehouses.Get("/:id", deps.WarehouseHandler.GetByID)
	warehouses.Put("/:id", deps.WarehouseHandler.Update)
	warehouses.Delete("/:id", deps.WarehouseHandler.Delete)

	locations := protected.Group("/locations")
	locations.Post("", deps.LocationHandler.Create)
	locations.Get("", deps.LocationHandler.List)
	locations.Get("/:id", deps.LocationHandler.GetByID)
	locations.Put("/:id", deps.LocationHandler.Update)
	locations.Delete("/:id", deps.LocationHandler.Delete)

	operations := protected.Group("/operations")
	operations.Post("", deps.OperationHandler.Apply)
	operations.Get("", deps.AuditHandler.ListOperations)

	deliveries := protected.Group("/deliveries")
	deliveries.Post("", deps.DeliveryHandler.Create)
	deliveries.Get("", deps.DeliveryHandler.List)
	deliveries.Get("/:id", deps.DeliveryHandler.GetByID)
	deliveries.Put("/:id", deps.DeliveryHandler.Update)
	deliveries.Delete("/:id", deps.DeliveryHandler.Delete)
	deliveries.Put("/:id/status", deps.DeliveryHandler.ChangeStatus)

	protected.Get("/move-history", deps.AuditHandler.ListMoveHistory)
	protected.Get("/dashboard", deps.DashboardHandler.Summary)
}

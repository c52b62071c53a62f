package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/organic-orders/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Controller    *session.Controller
	Admin         TokenVerifier
	Notifications NotificationSource
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAdmin := AdminMiddleware(deps.Admin)

	catalogHandler := NewCatalogHandler(deps.Controller, deps.Log)
	cartHandler := NewCartHandler(deps.Controller, deps.Log)
	orderHandler := NewOrderHandler(deps.Controller, deps.Log)
	adminHandler := NewAdminHandler(deps.Controller, deps.Notifications, deps.Log)

	// Catálogo (lectura pública, escritura admin)
	catalog := api.Group("/catalog")
	catalog.Get("/", catalogHandler.List)
	catalog.Put("/", requireAdmin, catalogHandler.Replace)
	catalog.Post("/import", requireAdmin, catalogHandler.Import)
	catalog.Get("/:position", catalogHandler.GetByPosition)

	// Carrito de la sesión
	cart := api.Group("/cart")
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Put("/items/:productId", cartHandler.SetQuantity)
	cart.Put("/discount", cartHandler.SetDiscount)
	api.Get("/slots", cartHandler.Slots)

	// Órdenes
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Checkout)
	orders.Get("/", orderHandler.List)
	orders.Delete("/", requireAdmin, orderHandler.ClearAll)
	orders.Get("/summary", orderHandler.Summary)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Patch("/:id/delivered", orderHandler.SetDelivered)
	orders.Post("/:id/edit", orderHandler.Edit)
	orders.Get("/:id/invoice", orderHandler.Invoice)
	orders.Get("/:id/share", orderHandler.Share)

	// Administración
	admin := api.Group("/admin")
	admin.Post("/unlock", adminHandler.Unlock)
	admin.Get("/settings", requireAdmin, adminHandler.GetSettings)
	admin.Put("/settings", requireAdmin, adminHandler.UpdateSettings)
	admin.Get("/export/orders.csv", requireAdmin, adminHandler.ExportCSV)
	admin.Get("/export/orders.xlsx", requireAdmin, adminHandler.ExportXLSX)

	api.Get("/notifications", adminHandler.Notifications)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ostramar/ostramar-api/internal/application/billing"
	"github.com/ostramar/ostramar-api/internal/application/orders"
	"github.com/ostramar/ostramar-api/internal/application/stats"
	"github.com/ostramar/ostramar-api/internal/application/stock"
	"github.com/ostramar/ostramar-api/internal/application/traceability"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC      *stock.UseCase
	Reservations *stock.ReservationService
	OrderUC      *orders.LifecycleUseCase
	ChainUC      *traceability.ChainUseCase
	InvoiceUC    *billing.InvoiceUseCase
	Aggregator   *stats.Aggregator
	StatsWorker  *stats.Worker
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stock (inventario físico)
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, deps.Reservations)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Put("/:id", stockHandler.Update)
	stocks.Put("/:id/quantity", stockHandler.AdjustQuantity)
	stocks.Delete("/:id", stockHandler.Delete)

	// Pedidos (ciclo de vida + reservas)
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id/status", orderHandler.Transition)
	ordersGroup.Delete("/:id", orderHandler.Delete)

	// Trazabilidad (lotes de cosecha)
	batches := api.Group("/batches")
	traceHandler := NewTraceabilityHandler(deps.ChainUC)
	batches.Post("/", traceHandler.CreateBatch)
	batches.Get("/", traceHandler.List)
	batches.Get("/:id", traceHandler.GetByID)
	batches.Post("/:id/checkpoints", traceHandler.AddCheckpoint)
	batches.Get("/:id/report", traceHandler.Report)

	// Facturación
	invoices := api.Group("/invoices")
	billingHandler := NewBillingHandler(deps.InvoiceUC)
	invoices.Post("/", billingHandler.Create)
	invoices.Get("/", billingHandler.List)
	invoices.Get("/:id", billingHandler.GetByID)
	invoices.Put("/:id/status", billingHandler.UpdateStatus)

	// Dashboard (contadores derivados)
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Aggregator, deps.StatsWorker)
	dashboard.Get("/stats", dashboardHandler.List)
	dashboard.Post("/recompute", dashboardHandler.Recompute)
}

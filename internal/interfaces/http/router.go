package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bizboard-api/internal/application/analytics"
	"github.com/jhoicas/Bizboard-api/internal/application/auth"
	"github.com/jhoicas/Bizboard-api/internal/application/inventory"
	"github.com/jhoicas/Bizboard-api/internal/application/transaction"
	"github.com/jhoicas/Bizboard-api/internal/application/usecase"
	"github.com/jhoicas/Bizboard-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	StockUC       *inventory.StockUseCase
	TransactionUC *transaction.UseCase
	AnalyticsUC   *analytics.UseCase
	DashboardUC   *analytics.DashboardUseCase
	ReportUC      *analytics.ReportUseCase
	Health        *HealthHandler
	Metrics       *metrics.Registry
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Check)
	}

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", requireAuth, authHandler.Profile)
	authGroup.Put("/profile", requireAuth, authHandler.UpdateProfile)
	authGroup.Post("/refresh-token", requireAuth, authHandler.RefreshToken)

	// Products: rutas fijas antes de /:id
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products := api.Group("/products", requireAuth)
	products.Get("/categories", productHandler.Categories)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/stock", productHandler.AdjustStock)

	// Transactions
	txHandler := NewTransactionHandler(deps.TransactionUC, deps.AnalyticsUC, deps.Metrics)
	txs := api.Group("/transactions", requireAuth)
	txs.Get("/summary", txHandler.Summary)
	txs.Get("/sales-trends", txHandler.SalesTrends)
	txs.Get("/categories", txHandler.Categories)
	txs.Get("/", txHandler.List)
	txs.Post("/", txHandler.Create)
	txs.Get("/:id", txHandler.GetByID)
	txs.Put("/:id", txHandler.Update)
	txs.Delete("/:id", txHandler.Delete)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.DashboardUC, deps.ReportUC)
	an := api.Group("/analytics", requireAuth)
	an.Get("/expenses", analyticsHandler.Expenses)
	an.Get("/product-performance", analyticsHandler.ProductPerformance)
	an.Get("/cash-flow", analyticsHandler.CashFlow)
	an.Get("/dashboard", analyticsHandler.Dashboard)
	an.Get("/report.pdf", analyticsHandler.Report)
}

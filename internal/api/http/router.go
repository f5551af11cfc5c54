package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-analytics/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-analytics/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Dashboard      *handlers.DashboardHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	dashboard := api.Group("/dashboard")
	dashboard.Get("/metrics", cfg.Dashboard.Metrics)
	dashboard.Get("/trends", cfg.Dashboard.Trends)
	dashboard.Get("/categories", cfg.Dashboard.Categories)

	// Report retrieval is attributed to a user in the download ledger,
	// so these routes require an identity.
	reports := api.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Get("/monthly-summary", cfg.Reports.MonthlySummary)
	reports.Get("/customer-activity", cfg.Reports.CustomerActivity)
	reports.Get("/sla-performance", cfg.Reports.SLAPerformance)
	reports.Get("/revenue", cfg.Reports.Revenue)
	reports.Get("/downloads", cfg.Reports.Downloads)
}

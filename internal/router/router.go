package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/handler"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Analyze *handler.AnalyzeHandler
	Health  *handler.HealthHandler
	Stats   *handler.StatsHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string, analyzePerMinute int) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus scrape endpoint
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	analyzeLimiter := middleware.NewAnalyzeRateLimiter(analyzePerMinute)
	api.Post("/analyze", h.Analyze.Analyze, analyzeLimiter.Handler())

	statsLimiter := middleware.NewStatsRateLimiter()
	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/emissiond/emissiond/internal/pkg/metrics"
)

const apiVersion = "1.0.0"

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", apiVersion)
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Deprecation headers for endpoints on their way out
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/api/v1/average.json",
			SunsetDate:  time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/api/v1/statistics.json/",
		},
	}))

	// Swagger UI is the landing page
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/docs", fiber.StatusFound)
	})

	// Health & readiness (fast internal checks, no timeout wrapper)
	app.Get("/api/v1/health", HealthHandler(deps))
	app.Get("/api/v1/ready", ReadyHandler(deps))

	// REST API v1, 15s per-request timeout. Non-strict routing matches the
	// trailing-slash forms as well.
	v1 := app.Group("/api/v1")
	v1.Get("/geo.json", timeout.NewWithContext(GeoJSONHandler(deps), 15*time.Second))
	v1.Get("/average.json", timeout.NewWithContext(AverageHandler(deps), 15*time.Second))
	v1.Get("/statistics.json", timeout.NewWithContext(StatisticsHandler(deps), 15*time.Second))
	v1.Get("/data/status", timeout.NewWithContext(StatusHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}

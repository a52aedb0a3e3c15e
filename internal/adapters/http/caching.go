package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override what the handler set
		if existing := c.GetRespHeader("Cache-Control"); existing != "" {
			return err
		}

		path := strings.TrimSuffix(c.Path(), "/")
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/api/v1/health" || path == "/api/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // Query mix varies per client

		case path == "/api/v1/data/status":
			ttl = "public, max-age=60" // Store stats: 1 min

		case strings.HasPrefix(path, "/docs"):
			ttl = "public, max-age=3600" // Static documentation

		case strings.HasPrefix(path, "/api/v1/"):
			ttl = "public, max-age=300" // 5 min default for measurement queries
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}

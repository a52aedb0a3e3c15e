package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedRoute marks an endpoint as deprecated with a sunset date.
type DeprecatedRoute struct {
	Path        string    // Route path, trailing slash ignored
	SunsetDate  time.Time // Date when the endpoint will be removed
	Alternative string    // Recommended successor endpoint (optional)
}

// DeprecationMiddleware adds Deprecation, Sunset, and Link headers to
// deprecated endpoints so clients can migrate before removal.
func DeprecationMiddleware(deprecated []DeprecatedRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimSuffix(c.Path(), "/")
		for _, d := range deprecated {
			if path != strings.TrimSuffix(d.Path, "/") {
				continue
			}

			// RFC 8594 Deprecation header
			c.Set("Deprecation", "true")

			// RFC 8594 Sunset header (HTTP-Date format)
			c.Set("Sunset", d.SunsetDate.UTC().Format(time.RFC1123))

			// RFC 8288 Link header naming the successor
			if d.Alternative != "" {
				c.Append("Link", fmt.Sprintf(`<%s>; rel="successor-version"`, d.Alternative))
			}

			// Warning header (RFC 7234)
			days := time.Until(d.SunsetDate).Hours() / 24
			c.Set("Warning", fmt.Sprintf(`299 - "Deprecated API, will sunset in %.0f days"`, days))

			break
		}

		return c.Next()
	}
}

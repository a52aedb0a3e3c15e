package http

import (
	"github.com/gofiber/fiber/v2"
)

// GeoJSONHandler handles GET /api/v1/geo.json/
// It returns the measurements inside the requested area as a GeoJSON
// FeatureCollection. Without an area parameter every stored point matches.
func GeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		tr, err := parseTimeRange(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		page, err := parsePage(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		fc, err := deps.Measurements.Points(c.Context(), area, tr, page)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("measurement query failed", "error", err)
			return errInternal(c, "failed to query measurements")
		}

		SetPageLinks(c, page, len(fc.Features))
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fc)
	}
}

// AverageHandler handles GET /api/v1/average.json/
// Deprecated in favor of the statistics endpoint; the router attaches the
// deprecation headers.
func AverageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		tr, err := parseTimeRange(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		page, err := parsePage(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		averages, err := deps.Measurements.DailyAverages(c.Context(), area, tr, page)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("daily average query failed", "error", err)
			return errInternal(c, "failed to compute daily averages")
		}

		SetPageLinks(c, page, len(averages))
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(averages)
	}
}

// StatisticsHandler handles GET /api/v1/statistics.json/
func StatisticsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		area, err := parseArea(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		tr, err := parseTimeRange(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		page, err := parsePage(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		stats, err := deps.Statistics.Daily(c.Context(), area, tr, page)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("daily statistics query failed", "error", err)
			return errInternal(c, "failed to compute daily statistics")
		}

		SetPageLinks(c, page, len(stats))
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(stats)
	}
}

// StatusHandler handles GET /api/v1/data/status
func StatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := deps.Imports.Status(c.Context())
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("store status query failed", "error", err)
			return errInternal(c, "failed to read store status")
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}

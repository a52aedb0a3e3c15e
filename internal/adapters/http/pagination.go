package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// SetPageLinks adds RFC 8288 Link headers for paginated responses.
// Without a limit the result is a single page and no headers are set.
// Aggregate counts are not queried, so a next link is offered only while
// pages come back full.
func SetPageLinks(c *fiber.Ctx, page domain.Page, returned int) {
	if page.Limit == nil || *page.Limit <= 0 {
		return
	}
	limit := *page.Limit
	offset := 0
	if page.Offset != nil {
		offset = *page.Offset
	}

	var links []string

	// first
	links = append(links, fmt.Sprintf(`<%s>; rel="first"`, pageURL(c, 0, limit)))

	// prev
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, pageURL(c, prev, limit)))
	}

	// next
	if returned == limit {
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, pageURL(c, offset+limit, limit)))
	}

	// Append keeps a successor-version link set by the deprecation middleware.
	c.Append("Link", strings.Join(links, ", "))
}

// pageURL rebuilds the request URL with offset and limit replaced and all
// other query parameters kept, so area and time filters survive paging.
func pageURL(c *fiber.Ctx, offset, limit int) string {
	var args fasthttp.Args
	c.Request().URI().QueryArgs().CopyTo(&args)
	args.Set("offset", strconv.Itoa(offset))
	args.Set("limit", strconv.Itoa(limit))
	return c.Path() + "?" + args.String()
}

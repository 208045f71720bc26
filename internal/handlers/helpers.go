package handlers

import (
	"net/url"
	"strings"

	"github.com/boardhq/board/internal/pagination"
	"github.com/labstack/echo/v4"
)

// isXHR reports whether the request came from an asynchronous caller, which
// gets JSON instead of a redirect from toggle actions.
func isXHR(c echo.Context) bool {
	return strings.EqualFold(c.Request().Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// safeNextURL returns the caller-supplied "next" destination if it is
// same-origin (relative, or an absolute URL on this host). Anything else
// falls back to the given default so toggles can never redirect off-site.
func safeNextURL(c echo.Context, fallback string) string {
	next := c.FormValue("next")
	if next == "" {
		next = c.QueryParam("next")
	}
	if next == "" {
		return fallback
	}

	u, err := url.Parse(next)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != c.Request().Host {
		return fallback
	}
	if u.Scheme != "" && u.Host == "" {
		// opaque schemes like javascript: or mailto:
		return fallback
	}
	return next
}

// pageMeta is the pagination envelope attached to every listing response.
func pageMeta[T any](p pagination.Page[T]) echo.Map {
	return echo.Map{
		"currentPage":     p.Number,
		"totalPages":      p.TotalPages,
		"totalItems":      p.TotalItems,
		"hasNextPage":     p.HasNext,
		"hasPreviousPage": p.HasPrev,
	}
}

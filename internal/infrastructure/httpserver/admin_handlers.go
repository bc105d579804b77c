package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// clearCache serves POST /admin/clear-cache, the webhook the upstream data
// source calls after out-of-band edits. Auth is enforced by middleware.
func (s *Server) clearCache(c echo.Context) error {
	if err := s.cacheAdminSvc.Clear(c.Request().Context()); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to clear cache")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "cache cleared",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// clearCacheStatus serves GET /admin/clear-cache as a liveness probe for the
// webhook endpoint.
func (s *Server) clearCacheStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "bar-directory-api",
		"endpoint":  "clear-cache",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

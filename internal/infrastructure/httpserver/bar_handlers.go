package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// listBars serves GET /bars. The active filter defaults to true; pass
// ?active=false for the full directory.
func (s *Server) listBars(c echo.Context) error {
	activeOnly := true
	if a := c.QueryParam("active"); a != "" {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid active parameter")
		}
		activeOnly = v
	}

	bars, source, err := s.barSvc.ListBars(c.Request().Context(), activeOnly)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to load bars")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"bars":    bars,
		"count":   len(bars),
		"source":  source,
	})
}

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// listDrinks serves GET /drinks with the same contract as the bar listing.
func (s *Server) listDrinks(c echo.Context) error {
	activeOnly := true
	if a := c.QueryParam("active"); a != "" {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid active parameter")
		}
		activeOnly = v
	}

	drinks, source, err := s.drinkSvc.ListDrinks(c.Request().Context(), activeOnly)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to load drinks")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"drinks":  drinks,
		"count":   len(drinks),
		"source":  source,
	})
}

package httpserver

import "github.com/labstack/echo/v4"

// errorJSON writes the wire-level failure envelope. Upstream and
// invalidation failures both surface as a generic message with the
// appropriate status code.
func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

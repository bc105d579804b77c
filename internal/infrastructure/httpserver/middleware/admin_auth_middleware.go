package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AdminAuthMiddleware gates admin endpoints behind a static shared secret.
// An empty secret disables the check (the endpoint stays open).
type AdminAuthMiddleware struct {
	secret string
	logger *logrus.Logger
}

func NewAdminAuthMiddleware(secret string, logger *logrus.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{secret: secret, logger: logger}
}

// RequireSharedSecret creates middleware that checks the Authorization
// bearer token against the configured secret.
func (m *AdminAuthMiddleware) RequireSharedSecret() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.secret == "" {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(m.secret)) != 1 {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("rejected admin request with missing or invalid secret")
				}
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "unauthorized",
				})
			}

			return next(c)
		}
	}
}

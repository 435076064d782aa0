package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shophub/storefront/internal/api/metrics"
	"github.com/shophub/storefront/internal/core/service"
)

// Guard lets a request through only while a session is held. Anyone else is
// redirected to the entry view with 302 Found.
func Guard(guard *service.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			target, ok := guard.Guard(c.Request().URL.Path)
			if !ok {
				metrics.GuardRedirectsTotal.Inc()
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

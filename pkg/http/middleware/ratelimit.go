package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	applogger "Jyotisa/pkg/logger"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over the limit with 429, keyed by client IP.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				if l != nil {
					l.Warn("rate limiter unavailable", applogger.Error(err))
				}
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": http.StatusText(http.StatusTooManyRequests),
				})
			}
			return next(c)
		}
	}
}

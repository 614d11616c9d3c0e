package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Register installs the middleware every route shares: panic recovery,
// request ids and request logging.
func Register(e *echo.Echo, log *slog.Logger) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(Slog(log))
}

// Slog logs one line per request after the handler has run.
func Slog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the error so the logged status is final
				c.Error(err)
			}
			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"ip", c.RealIP(),
				"sharer", sharerID(c),
			)
			return nil
		}
	}
}

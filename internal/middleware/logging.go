// Package middleware provides Echo middleware for logging, metrics and header hygiene.
package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger returns an Echo middleware that logs each request with slog.
// The proxy outcome is included when the handler recorded one.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			attrs := []any{
				"method", req.Method,
				"uri", req.RequestURI,
				"status", responseStatus(c, err),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", contextString(c, RequestIDKey),
				"remote_ip", c.RealIP(),
				"bytes_in", req.ContentLength,
				"bytes_out", res.Size,
			}
			if outcome := contextString(c, OutcomeKey); outcome != "" {
				attrs = append(attrs, "outcome", outcome)
			}

			if err != nil {
				logger.Warn("request", append(attrs, "err", err)...)
			} else {
				logger.Info("request", attrs...)
			}

			return err
		}
	}
}

// responseStatus returns the status the client will see. An *echo.HTTPError
// is written later by Echo's error handler.
func responseStatus(c echo.Context, err error) int {
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
	}
	return c.Response().Status
}

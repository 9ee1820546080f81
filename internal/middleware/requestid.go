package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys shared between the proxy handler and the middleware chain.
const (
	RequestIDKey = "request_id"
	OutcomeKey   = "proxy_outcome"
)

// RequestID stores a request ID in the Echo context for logging. An inbound
// X-Request-Id is reused when present. Neither the request nor the response
// headers are touched, so the proxied exchange stays byte-identical.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(RequestIDKey, id)
			return next(c)
		}
	}
}

func contextString(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}

package middleware

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit returns a per-client-IP limiter allowing rps requests per second.
// Rejected requests get a bare 429 so that no body is invented for the client.
func RateLimit(rps float64) echo.MiddlewareFunc {
	burst := int(math.Ceil(rps))
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(rps),
		Burst: burst,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.NoContent(http.StatusTooManyRequests)
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.NoContent(http.StatusForbidden)
		},
	})
}

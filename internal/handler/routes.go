package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relay-proxy/internal/metrics"
)

// RegisterProxyRoutes sends every path on the proxy listener to the proxy.
// Echo's Any only registers its own method list, so any other method token
// surfaces as ErrMethodNotAllowed; the error handler hands those to the proxy
// too, which answers them with its own 405.
func RegisterProxyRoutes(e *echo.Echo, proxy *ProxyHandler) {
	e.Any("/*", proxy.Handle)

	fallback := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if errors.Is(err, echo.ErrMethodNotAllowed) && !c.Response().Committed {
			// Drop the router's Allow list; the proxy sets its own.
			c.Response().Header().Del(echo.HeaderAllow)
			if err = proxy.Handle(c); err == nil {
				return
			}
		}
		fallback(err, c)
	}
}

// RegisterAdminRoutes wires health, status and metrics onto the admin listener.
func RegisterAdminRoutes(e *echo.Echo, health *HealthHandler, m *metrics.Metrics, metricsPath string) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)
	e.GET(metricsPath, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"relay-proxy/internal/config"
	"relay-proxy/internal/metrics"
	"relay-proxy/internal/middleware"
)

// proxyServer and adminServer tag the two Echo instances for fx.
type (
	proxyServer struct{ *echo.Echo }
	adminServer struct{ *echo.Echo }
)

// newProxyEcho assembles the proxy listener's middleware chain. Nothing in
// the chain writes response headers or alters the forwarded request unless
// server.strip_hop_by_hop is set.
func newProxyEcho(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) proxyServer {
	e := newEcho()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger.With("target", cfg.Target.String())))
	e.Use(middleware.MetricsMiddleware(m))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dB", cfg.Server.BodyMaxBytes)))

	if cfg.Server.StripHopByHop {
		e.Use(middleware.StripHopByHop())
		logger.Info("hop-by-hop header stripping enabled")
	}

	if cfg.Server.RateLimit.Enabled {
		e.Use(middleware.RateLimit(cfg.Server.RateLimit.RequestsPerSecond))
		logger.Info("rate limiter enabled", "rps", cfg.Server.RateLimit.RequestsPerSecond)
	}

	return proxyServer{e}
}

func newAdminEcho() adminServer {
	e := newEcho()
	e.Use(echomw.Recover())
	return adminServer{e}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Inbound timeouts to mitigate slow-client attacks. WriteTimeout stays
	// disabled; upstream.timeout_seconds bounds the time to a response.
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 0
	e.Server.IdleTimeout = 120 * time.Second
	e.Server.ReadHeaderTimeout = 10 * time.Second
	return e
}

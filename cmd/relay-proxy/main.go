package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"relay-proxy/internal/client"
	"relay-proxy/internal/config"
	"relay-proxy/internal/handler"
	"relay-proxy/internal/metrics"
	"relay-proxy/internal/model"
	"relay-proxy/internal/service"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var cli config.CLI
	kong.Parse(&cli,
		kong.Name("relay-proxy"),
		kong.Description("Reverse proxy that relays every request to a single upstream target."),
		kong.Vars{"version": fmt.Sprintf("%s (%s, %s)", version, commit, date)},
	)

	fx.New(
		fx.Provide(
			func() *config.CLI { return &cli },
			func() handler.Version { return handler.Version(version) },
			config.Load,
			func(cfg *config.Config) model.ProxyTarget { return cfg.Target },
			newLogger,
			metrics.New,
			newProxyEcho,
			newAdminEcho,
			client.NewUpstreamClient,
			func(c *client.UpstreamClient) service.Upstream { return c },
			service.NewProxyService,
			handler.NewProxyHandler,
			handler.NewHealthHandler,
		),
		fx.Invoke(registerRoutes, warnConfigPermissions, startServers),
	).Run()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "text":
		h = slog.NewTextHandler(os.Stdout, opts)
	default:
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(h)
}

func registerRoutes(
	proxy proxyServer,
	admin adminServer,
	ph *handler.ProxyHandler,
	hh *handler.HealthHandler,
	m *metrics.Metrics,
	cfg *config.Config,
) {
	handler.RegisterProxyRoutes(proxy.Echo, ph)
	handler.RegisterAdminRoutes(admin.Echo, hh, m, cfg.Admin.MetricsPath)
}

func warnConfigPermissions(cfg *config.Config, logger *slog.Logger) {
	cfg.WarnPermissions(logger)
}

func startServers(lc fx.Lifecycle, proxy proxyServer, admin adminServer, cfg *config.Config, logger *slog.Logger) {
	appendServer(lc, proxy.Echo, cfg.Server.Addr(), logger.With("listener", "proxy"))
	if cfg.Admin.Enabled {
		appendServer(lc, admin.Echo, cfg.Admin.Addr(), logger.With("listener", "admin"))
	}
	logger.Info("proxy target resolved", "target", cfg.Target.String())
}

func appendServer(lc fx.Lifecycle, e *echo.Echo, addr string, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("bind %s: %w", addr, err)
			}
			logger.Info("starting server", "addr", addr)
			go func() {
				if err := e.Server.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("server error", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down server")
			return e.Shutdown(ctx)
		},
	})
}

// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"relay-proxy/internal/model"
)

// configSearchPaths lists paths checked in order when no explicit config is given.
var configSearchPaths = []string{
	"/etc/relay-proxy/config.toml",
	"configs/config.toml",
}

// reservedAdminPaths are served by the admin listener itself.
var reservedAdminPaths = []string{"/healthz", "/proxy/status"}

// CLI holds command-line arguments parsed by Kong.
type CLI struct {
	Config   string `kong:"short='c',help='Path to TOML or YAML config file.',env='CONFIG_PATH'"`
	Host     string `kong:"help='Listen host (overrides config).',env='HOST'"`
	Port     int    `kong:"short='p',help='Listen port (overrides config).',env='PORT'"`
	LogLevel string `kong:"help='Log level: debug|info|warn|error (overrides config).',env='LOG_LEVEL'"`

	Version kong.VersionFlag `kong:"short='v',help='Print version and exit.'"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Upstream UpstreamConfig `toml:"upstream" yaml:"upstream"`
	Admin    AdminConfig    `toml:"admin" yaml:"admin"`
	Log      LogConfig      `toml:"log" yaml:"log"`

	// Target is resolved from the proxy_target key during Load.
	Target model.ProxyTarget `toml:"-" yaml:"-"`

	raw      map[string]any
	filePath string // resolved config file path (unexported)
}

// ServerConfig holds proxy listener settings.
type ServerConfig struct {
	Host      string          `toml:"host" yaml:"host"`
	Port      int             `toml:"port" yaml:"port"` // 0 means "use default" (8000)
	BodyLimit string          `toml:"body_limit" yaml:"body_limit"`
	RateLimit RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`

	// StripHopByHop removes hop-by-hop request headers before forwarding.
	// Off by default: the proxy forwards requests unmodified apart from Host.
	StripHopByHop bool `toml:"strip_hop_by_hop" yaml:"strip_hop_by_hop"`

	// BodyMaxBytes is parsed from BodyLimit.
	BodyMaxBytes int64 `toml:"-" yaml:"-"`
}

// RateLimitConfig controls per-IP request rate limiting.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" yaml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
}

// UpstreamConfig holds outbound call settings.
type UpstreamConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds" yaml:"timeout_seconds"`
	// EmitCodeHeader writes the synthetic "code" response header for
	// consumers that still read the status from it.
	EmitCodeHeader bool `toml:"emit_code_header" yaml:"emit_code_header"`
}

// AdminConfig holds the health/metrics listener settings.
type AdminConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	Host        string `toml:"host" yaml:"host"`
	Port        int    `toml:"port" yaml:"port"`
	MetricsPath string `toml:"metrics_path" yaml:"metrics_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Load reads the config file and applies CLI overrides.
// When no explicit path is given (via --config or CONFIG_PATH), it searches
// /etc/relay-proxy/config.toml then configs/config.toml.
func Load(cli *CLI) (*Config, error) {
	path := cli.Config
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return nil, fmt.Errorf("config: no config file found (searched %v)", configSearchPaths)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.filePath = path
	cfg.applyCLI(cli)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	cfg.setDefaults()
	return cfg, nil
}

// parse decodes data both into the typed Config and into the raw key map
// that backs Lookup. The format follows the file extension.
func parse(path string, data []byte) (*Config, error) {
	var cfg Config
	raw := make(map[string]any)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	cfg.raw = raw
	return &cfg, nil
}

// Lookup returns the raw value stored under a top-level config key.
func (c *Config) Lookup(key string) (any, bool) {
	v, ok := c.raw[key]
	return v, ok
}

// applyCLI overrides config values with non-zero CLI flags.
func (c *Config) applyCLI(cli *CLI) {
	if cli.Host != "" {
		c.Server.Host = cli.Host
	}
	if cli.Port != 0 {
		c.Server.Port = cli.Port
	}
	if cli.LogLevel != "" {
		c.Log.Level = cli.LogLevel
	}
}

// validate reports every problem at once so a bad deployment is fixed in one pass.
func (c *Config) validate() error {
	var errs error

	target, err := ResolveTarget(c)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	c.Target = target

	// Numeric bounds.
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("server.port must be 0–65535; got %d", c.Server.Port))
	}
	if c.Admin.Port < 0 || c.Admin.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("admin.port must be 0–65535; got %d", c.Admin.Port))
	}
	if c.Upstream.TimeoutSeconds < 0 {
		errs = multierr.Append(errs, fmt.Errorf("upstream.timeout_seconds must be non-negative; got %d", c.Upstream.TimeoutSeconds))
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RequestsPerSecond <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("server.rate_limit.requests_per_second must be > 0 when rate limiting is enabled; got %v", c.Server.RateLimit.RequestsPerSecond))
	}

	if c.Server.BodyLimit != "" {
		n, err := humanize.ParseBytes(c.Server.BodyLimit)
		switch {
		case err != nil:
			errs = multierr.Append(errs, fmt.Errorf("server.body_limit is not a valid size: %w", err))
		case n == 0:
			errs = multierr.Append(errs, fmt.Errorf("server.body_limit must be > 0; got %q", c.Server.BodyLimit))
		default:
			c.Server.BodyMaxBytes = int64(n)
		}
	}

	// Log fields.
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text", "":
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", c.Log.Format))
	}

	// Metrics path validation (only when the admin listener is enabled).
	if c.Admin.Enabled && c.Admin.MetricsPath != "" {
		p := c.Admin.MetricsPath
		if p[0] != '/' {
			errs = multierr.Append(errs, fmt.Errorf("admin.metrics_path must start with '/'; got %q", p))
		}
		for _, reserved := range reservedAdminPaths {
			if p == reserved || strings.HasPrefix(p, reserved+"/") {
				errs = multierr.Append(errs, fmt.Errorf("admin.metrics_path %q conflicts with reserved route %q", p, reserved))
			}
		}
	}

	return errs
}

// setDefaults fills zero-valued fields with sensible defaults.
// For integer fields zero means "unset" because TOML cannot distinguish
// between an explicit 0 and an omitted key.
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.BodyMaxBytes == 0 {
		c.Server.BodyMaxBytes = 10 * humanize.MiByte
	}
	if c.Upstream.TimeoutSeconds == 0 {
		c.Upstream.TimeoutSeconds = 30
	}
	if c.Admin.Host == "" {
		c.Admin.Host = "127.0.0.1"
	}
	if c.Admin.Port == 0 {
		c.Admin.Port = 9090
	}
	if c.Admin.MetricsPath == "" {
		c.Admin.MetricsPath = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// findConfig returns the first config path that exists, or empty string.
func findConfig() string {
	return findConfigInPaths(configSearchPaths)
}

// findConfigInPaths returns the first path that exists on disk, or empty string.
func findConfigInPaths(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Addr returns the proxy listen address as host:port.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the admin listen address as host:port.
func (c *AdminConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WarnPermissions logs a warning if the config file is readable by group or others.
func (c *Config) WarnPermissions(logger *slog.Logger) {
	if c.filePath == "" {
		return
	}
	info, err := os.Stat(c.filePath)
	if err != nil {
		return
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		logger.Warn("config file is readable by group/others; consider chmod 600",
			"path", c.filePath,
			"mode", fmt.Sprintf("%04o", perm),
		)
	}
}

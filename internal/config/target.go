package config

import (
	"errors"
	"fmt"
	"math"

	"relay-proxy/internal/model"
)

// TargetKey is the config key holding the upstream target tuple.
const TargetKey = "proxy_target"

// ErrMalformedTarget is returned when the proxy_target value has an unexpected shape.
var ErrMalformedTarget = errors.New("malformed proxy_target")

var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
}

// Lookup retrieves raw configuration values by key.
type Lookup interface {
	Lookup(key string) (any, bool)
}

// ResolveTarget reads proxy_target from l. Accepted shapes are
// [protocol, host] (port defaults by protocol) and [protocol, host, port].
func ResolveTarget(l Lookup) (model.ProxyTarget, error) {
	v, ok := l.Lookup(TargetKey)
	if !ok {
		return model.ProxyTarget{}, fmt.Errorf("%w: %s is required", ErrMalformedTarget, TargetKey)
	}

	items, ok := v.([]any)
	if !ok || (len(items) != 2 && len(items) != 3) {
		return model.ProxyTarget{}, fmt.Errorf("%w: want [protocol, host] or [protocol, host, port]; got %v", ErrMalformedTarget, v)
	}

	proto, ok := items[0].(string)
	if !ok {
		return model.ProxyTarget{}, fmt.Errorf("%w: protocol must be a string; got %v", ErrMalformedTarget, items[0])
	}
	defaultPort, ok := defaultPorts[proto]
	if !ok {
		return model.ProxyTarget{}, fmt.Errorf("%w: protocol must be http or https; got %q", ErrMalformedTarget, proto)
	}

	host, ok := items[1].(string)
	if !ok || host == "" {
		return model.ProxyTarget{}, fmt.Errorf("%w: host must be a non-empty string; got %v", ErrMalformedTarget, items[1])
	}

	port := defaultPort
	if len(items) == 3 {
		p, err := toPort(items[2])
		if err != nil {
			return model.ProxyTarget{}, fmt.Errorf("%w: %w", ErrMalformedTarget, err)
		}
		port = p
	}

	return model.ProxyTarget{Protocol: proto, Host: host, Port: port}, nil
}

// toPort accepts the integer representations produced by the TOML and YAML decoders.
func toPort(v any) (int, error) {
	var n int64
	switch p := v.(type) {
	case int:
		n = int64(p)
	case int64:
		n = p
	case uint64:
		if p > math.MaxInt32 {
			return 0, fmt.Errorf("port out of range: %d", p)
		}
		n = int64(p)
	case float64:
		if p != math.Trunc(p) {
			return 0, fmt.Errorf("port must be an integer; got %v", p)
		}
		n = int64(p)
	default:
		return 0, fmt.Errorf("port must be an integer; got %v", v)
	}

	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port must be 1–65535; got %d", n)
	}
	return int(n), nil
}

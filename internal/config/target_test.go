package config

import (
	"errors"
	"testing"

	"relay-proxy/internal/model"
)

type mapLookup map[string]any

func (m mapLookup) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name  string
		value []any
		want  model.ProxyTarget
	}{
		{"http two-tuple", []any{"http", "example.com"}, model.ProxyTarget{Protocol: "http", Host: "example.com", Port: 80}},
		{"https two-tuple", []any{"https", "example.com"}, model.ProxyTarget{Protocol: "https", Host: "example.com", Port: 443}},
		{"int port", []any{"http", "example.com", 8080}, model.ProxyTarget{Protocol: "http", Host: "example.com", Port: 8080}},
		{"int64 port", []any{"https", "example.com", int64(8443)}, model.ProxyTarget{Protocol: "https", Host: "example.com", Port: 8443}},
		{"uint64 port", []any{"http", "example.com", uint64(81)}, model.ProxyTarget{Protocol: "http", Host: "example.com", Port: 81}},
		{"float port", []any{"http", "example.com", float64(9000)}, model.ProxyTarget{Protocol: "http", Host: "example.com", Port: 9000}},
		{"explicit port overrides default", []any{"https", "example.com", 80}, model.ProxyTarget{Protocol: "https", Host: "example.com", Port: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(mapLookup{TargetKey: tt.value})
			if err != nil {
				t.Fatalf("ResolveTarget() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveTarget() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveTarget_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		lookup mapLookup
	}{
		{"missing key", mapLookup{}},
		{"not a list", mapLookup{TargetKey: "http://example.com"}},
		{"empty list", mapLookup{TargetKey: []any{}}},
		{"one element", mapLookup{TargetKey: []any{"http"}}},
		{"four elements", mapLookup{TargetKey: []any{"http", "example.com", 80, 81}}},
		{"protocol not string", mapLookup{TargetKey: []any{1, "example.com"}}},
		{"upper-case protocol", mapLookup{TargetKey: []any{"HTTP", "example.com"}}},
		{"host not string", mapLookup{TargetKey: []any{"http", 42}}},
		{"fractional port", mapLookup{TargetKey: []any{"http", "example.com", 80.5}}},
		{"negative port", mapLookup{TargetKey: []any{"http", "example.com", -1}}},
		{"huge uint port", mapLookup{TargetKey: []any{"http", "example.com", uint64(1 << 40)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTarget(tt.lookup)
			if err == nil {
				t.Fatal("ResolveTarget() expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedTarget) {
				t.Errorf("error = %v, want ErrMalformedTarget", err)
			}
		})
	}
}

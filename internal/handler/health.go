// Package handler contains the Echo handlers for the proxy and admin listeners.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"relay-proxy/internal/model"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	target  model.ProxyTarget
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(target model.ProxyTarget, v Version) *HealthHandler {
	return &HealthHandler{target: target, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns proxy status information.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": string(h.version),
		"target":  h.target.String(),
	})
}

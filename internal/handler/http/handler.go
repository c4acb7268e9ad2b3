// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/dashboard-api/internal/config"
	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/metrics"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/throttle"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics
	throttle *throttle.Registry

	cfg    config.Server
	routes []Route

	logger *logger.Logger
}

// NewHandler builds the route table. The token throttle is disabled when
// cfg.TokenRateLimit is zero. A nil m gets a fresh metrics registry.
func NewHandler(services *service.Services, cfg config.Server, m *metrics.Metrics, logger *logger.Logger) *Handler {
	if m == nil {
		m = metrics.New()
	}

	h := &Handler{
		services: services,
		metrics:  m,
		cfg:      cfg,
		logger:   logger,
	}
	if cfg.TokenRateLimit > 0 {
		h.throttle = throttle.NewRegistry(cfg.TokenRateLimit, cfg.TokenRateBurst, throttle.DefaultIdleTTL)
	}
	h.routes = h.routeTable()

	logger.Info().Int("routes", len(h.routes)).Msg("http handler created")
	return h
}

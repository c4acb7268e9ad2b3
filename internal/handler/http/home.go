// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/dashboard-api/internal/utils"
)

const homeGreeting = "Hello from Django!"

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, homeGreeting, http.StatusOK)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, errNotFound)
}

func (h *Handler) serveMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.Handler().ServeHTTP(w, r)
}

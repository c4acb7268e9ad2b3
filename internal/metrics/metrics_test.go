// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("/api/user/info", http.MethodGet, http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest("/api/user/info", http.MethodGet, http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/api/user/info", http.MethodGet, http.StatusUnauthorized, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `dashboard_http_requests_total{method="GET",route="/api/user/info",status="200"} 2`)
	assert.Contains(t, body, `dashboard_http_requests_total{method="GET",route="/api/user/info",status="401"} 1`)
	assert.Contains(t, body, `dashboard_http_request_duration_seconds_count{method="GET",route="/api/user/info"} 3`)
}

func TestTokenIssuedAndAuthFailure(t *testing.T) {
	m := New()

	m.TokenIssued("access")
	m.TokenIssued("access")
	m.TokenIssued("refresh")
	m.AuthFailure("token_not_valid")

	body := scrape(t, m)
	assert.Contains(t, body, `dashboard_auth_tokens_issued_total{token_type="access"} 2`)
	assert.Contains(t, body, `dashboard_auth_tokens_issued_total{token_type="refresh"} 1`)
	assert.Contains(t, body, `dashboard_auth_failures_total{reason="token_not_valid"} 1`)
}

func TestHandler_IncludesRuntimeCollectors(t *testing.T) {
	body := scrape(t, New())

	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "go_memstats_alloc_bytes")
}

func TestNew_RegistriesAreIndependent(t *testing.T) {
	first, second := New(), New()
	first.AuthFailure("user_inactive")

	assert.Contains(t, scrape(t, first), `dashboard_auth_failures_total{reason="user_inactive"} 1`)
	assert.NotContains(t, scrape(t, second), "user_inactive")
}

func TestRegistry_GathersCustomCollectors(t *testing.T) {
	m := New()
	m.TokenIssued("access")

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "dashboard_auth_tokens_issued_total")
}

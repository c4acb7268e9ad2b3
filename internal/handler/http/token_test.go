// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/dashboard-api/internal/metrics"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestObtainTokenPair(t *testing.T) {
	router, deps := newTestRouter(t)
	credentials := models.Credentials{Username: "alice", Password: "correct horse"}
	deps.auth.EXPECT().ObtainTokenPair(gomock.Any(), credentials).
		Return(models.TokenPair{Refresh: "r", Access: "a"}, nil)

	rr := doRequest(router, http.MethodPost, "/api/token/", "", `{"username":"alice","password":"correct horse"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"refresh":"r","access":"a"}`, rr.Body.String())

	exposed := scrape(t, deps.metrics)
	assert.Contains(t, exposed, `dashboard_auth_tokens_issued_total{token_type="access"} 1`)
	assert.Contains(t, exposed, `dashboard_auth_tokens_issued_total{token_type="refresh"} 1`)
}

func TestObtainTokenPair_Failures(t *testing.T) {
	missingPassword := &validators.ValidationError{}
	missingPassword.Add("password", "This field is required.")

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "wrong credentials",
			body:       `{"username":"alice","password":"nope"}`,
			serviceErr: service.ErrNoActiveAccount,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"No active account found with the given credentials","code":"no_active_account"}`,
		},
		{
			name:       "missing field",
			body:       `{"username":"alice"}`,
			serviceErr: missingPassword,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"password":["This field is required."]}`,
		},
		{
			name:       "malformed body",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"JSON parse error.","code":"parse_error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)
			if tt.serviceErr != nil {
				deps.auth.EXPECT().ObtainTokenPair(gomock.Any(), gomock.Any()).Return(models.TokenPair{}, tt.serviceErr)
			}

			rr := doRequest(router, http.MethodPost, "/api/token/", "", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestObtainTokenPair_EmptyBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, http.MethodPost, "/api/token/", "", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "parse_error", decodeErrorResponse(t, rr).Code)
}

func TestObtainTokenPair_FailureIsCounted(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.EXPECT().ObtainTokenPair(gomock.Any(), gomock.Any()).Return(models.TokenPair{}, service.ErrNoActiveAccount)

	doRequest(router, http.MethodPost, "/api/token/", "", `{"username":"alice","password":"nope"}`)

	assert.Contains(t, scrape(t, deps.metrics), `dashboard_auth_failures_total{reason="no_active_account"} 1`)
}

func TestRefreshToken(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.EXPECT().RefreshAccessToken(gomock.Any(), "refresh-token").
		Return(models.AccessToken{Access: "new-access"}, nil)

	rr := doRequest(router, http.MethodPost, "/api/token/refresh/", "", `{"refresh":"refresh-token"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"access":"new-access"}`, rr.Body.String())
}

func TestRefreshToken_Failures(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantCode   string
		wantDetail string
	}{
		{
			name:       "invalid or access-typed token",
			serviceErr: service.ErrTokenIsExpiredOrInvalid,
			wantCode:   "token_not_valid",
			wantDetail: "Token is invalid or expired",
		},
		{
			name:       "owner gone",
			serviceErr: service.ErrNoActiveAccountForToken,
			wantCode:   "no_active_account",
			wantDetail: "No active account found for the given token.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)
			deps.auth.EXPECT().RefreshAccessToken(gomock.Any(), "x").Return(models.AccessToken{}, tt.serviceErr)

			rr := doRequest(router, http.MethodPost, "/api/token/refresh/", "", `{"refresh":"x"}`)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			response := decodeErrorResponse(t, rr)
			assert.Equal(t, tt.wantCode, response.Code)
			assert.Equal(t, tt.wantDetail, response.Detail)
		})
	}
}

func TestTokenEndpoints_Throttled(t *testing.T) {
	cfg := testServerConfig()
	cfg.TokenRateLimit = 1
	cfg.TokenRateBurst = 2

	h, deps := newTestHandler(t, cfg)
	router, err := h.Init()
	require.NoError(t, err)

	deps.auth.EXPECT().ObtainTokenPair(gomock.Any(), gomock.Any()).
		Return(models.TokenPair{Refresh: "r", Access: "a"}, nil).Times(2)

	body := `{"username":"alice","password":"correct horse"}`
	for range 2 {
		rr := doRequest(router, http.MethodPost, "/api/token/", "", body)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doRequest(router, http.MethodPost, "/api/token/", "", body)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	response := decodeErrorResponse(t, rr)
	assert.Equal(t, "throttled", response.Code)
	assert.True(t, strings.HasPrefix(response.Detail, "Request was throttled."), response.Detail)

	// the refresh endpoint shares the client's bucket
	rr = doRequest(router, http.MethodPost, "/api/token/refresh/", "", `{"refresh":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// other routes are not throttled
	rr = doRequest(router, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTokenEndpoints_ThrottlePerClientIP(t *testing.T) {
	cfg := testServerConfig()
	cfg.TokenRateLimit = 1
	cfg.TokenRateBurst = 1

	h, deps := newTestHandler(t, cfg)
	router, err := h.Init()
	require.NoError(t, err)

	deps.auth.EXPECT().RefreshAccessToken(gomock.Any(), "x").
		Return(models.AccessToken{Access: "a"}, nil).Times(2)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/token/refresh/", strings.NewReader(`{"refresh":"x"}`))
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, ip)
	}
}

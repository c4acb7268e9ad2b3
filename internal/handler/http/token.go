// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/utils"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

// obtainTokenPair exchanges username and password for a refresh and an
// access token.
func (h *Handler) obtainTokenPair(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := utils.ReadJSON(r, &credentials); err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.ObtainTokenPair(r.Context(), credentials)
	if err != nil {
		h.recordTokenFailure(err)
		h.writeError(w, r, err)
		return
	}

	h.metrics.TokenIssued(string(models.RefreshTokenType))
	h.metrics.TokenIssued(string(models.AccessTokenType))
	log.Info().Str("username", credentials.Username).Msg("token pair issued")

	utils.WriteJSON(w, pair, http.StatusOK)
}

// refreshToken issues a new access token for a valid refresh token. The
// refresh token itself is not rotated.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var request models.RefreshRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	access, err := h.services.AuthService.RefreshAccessToken(r.Context(), request.Refresh)
	if err != nil {
		h.recordTokenFailure(err)
		h.writeError(w, r, err)
		return
	}

	h.metrics.TokenIssued(string(models.AccessTokenType))

	utils.WriteJSON(w, access, http.StatusOK)
}

func (h *Handler) recordTokenFailure(err error) {
	if errors.Is(err, validators.ErrInvalidInput) {
		return
	}
	if response := responseFromError(err); response.status == http.StatusUnauthorized {
		h.metrics.AuthFailure(response.code)
	}
}

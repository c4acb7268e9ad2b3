// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/utils"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

// wwwAuthenticate is sent with every 401 response.
const wwwAuthenticate = `Bearer realm="api"`

type errorResponse struct {
	status int
	detail string
	code   string
}

var internalErrorResponse = errorResponse{
	status: http.StatusInternalServerError,
	detail: "A server error occurred.",
	code:   "error",
}

// errorResponses is matched top to bottom with errors.Is.
var errorResponses = []struct {
	target   error
	response errorResponse
}{
	{utils.ErrAuthorizationHeaderMissing, errorResponse{http.StatusUnauthorized, "Authentication credentials were not provided.", "not_authenticated"}},
	{utils.ErrAuthorizationHeaderInvalid, errorResponse{http.StatusUnauthorized, "Authorization header must contain two space-delimited values", "bad_authorization_header"}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, "Token is invalid or expired", "token_not_valid"}},
	{service.ErrNoActiveAccount, errorResponse{http.StatusUnauthorized, "No active account found with the given credentials", "no_active_account"}},
	{service.ErrNoActiveAccountForToken, errorResponse{http.StatusUnauthorized, "No active account found for the given token.", "no_active_account"}},
	{service.ErrUserInactive, errorResponse{http.StatusUnauthorized, "User is inactive", "user_inactive"}},

	{errForbidden, errorResponse{http.StatusForbidden, "You do not have permission to perform this action.", "permission_denied"}},
	{errThrottled, errorResponse{http.StatusTooManyRequests, "Request was throttled.", "throttled"}},

	{errNotFound, errorResponse{http.StatusNotFound, "Not found.", ""}},
	{errInvalidUserID, errorResponse{http.StatusNotFound, "Not found.", ""}},
	{service.ErrUserNotFound, errorResponse{http.StatusNotFound, "Not found.", ""}},

	{utils.ErrMalformedBody, errorResponse{http.StatusBadRequest, "JSON parse error.", "parse_error"}},
	{service.ErrNothingToUpdate, errorResponse{http.StatusBadRequest, "At least one field must be provided for update.", "invalid"}},
}

func responseFromError(err error) errorResponse {
	for _, candidate := range errorResponses {
		if errors.Is(err, candidate.target) {
			return candidate.response
		}
	}
	return internalErrorResponse
}

// writeError renders err in the {"detail", "code"} format. Validation
// errors are rendered as {"field": ["message", ...]} with 400.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		log.Debug().Err(err).Msg("request rejected by validation")
		utils.WriteJSON(w, validationErr.Fields, http.StatusBadRequest)
		return
	}

	response := responseFromError(err)
	if response.status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", response.status).Msg("request rejected")
	}

	writeErrorResponse(w, response)
}

func writeErrorResponse(w http.ResponseWriter, response errorResponse) {
	if response.status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", wwwAuthenticate)
	}
	utils.WriteJSON(w, models.ErrorResponse{Detail: response.detail, Code: response.code}, response.status)
}

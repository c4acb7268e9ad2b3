// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/utils"
	"github.com/rs/zerolog"
)

// userNotFoundResponse differs from the admin 404 for the same service
// error: a token whose owner is gone is an authentication failure.
var userNotFoundResponse = errorResponse{http.StatusUnauthorized, "User not found", "user_not_found"}

// auth is an HTTP middleware that enforces JWT bearer authentication.
//
// It parses the "Authorization" header, verifies the access token via
// [service.AuthService.Authenticate] and stores the resolved user in the
// request context under [utils.UserCtxKey]. The request logger is enriched
// with the user id.
//
// Requests are rejected with 401 Unauthorized when the header is absent or
// uses another scheme, when it is malformed, when the token is invalid,
// expired or refresh-typed, and when its owner is missing or inactive.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			h.rejectAuth(w, r, err, responseFromError(err))
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			h.rejectAuth(w, r, err, userNotFoundResponse)
			return
		case err != nil:
			h.rejectAuth(w, r, err, responseFromError(err))
			return
		}

		log := logger.FromContext(ctx).GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", user.UserID)
		})
		ctx = log.WithContext(utils.WithUser(ctx, user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) rejectAuth(w http.ResponseWriter, r *http.Request, err error, response errorResponse) {
	if response.status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("authentication failed")
	} else {
		logger.FromRequest(r).Info().Err(err).Str("code", response.code).Msg("authentication rejected")
		h.metrics.AuthFailure(response.code)
	}
	writeErrorResponse(w, response)
}

// requireStaff lets only staff users through. It must run after auth.
func (h *Handler) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok || !user.IsStaff {
			h.writeError(w, r, errForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireSuperuser lets only staff superusers through. It must run after
// auth.
func (h *Handler) requireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok || !user.IsStaff || !user.IsSuperuser {
			h.writeError(w, r, errForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

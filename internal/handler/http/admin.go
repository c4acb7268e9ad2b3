// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/utils"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
	"github.com/go-chi/chi/v5"
)

const adminSiteHeader = "Django administration"

func (h *Handler) adminIndex(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	usersURL, err := h.Reverse("admin:users_list")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AdminIndex{
		SiteHeader: adminSiteHeader,
		Models: []models.AdminModel{
			{Name: "Users", URL: usersURL, CanChange: user.IsSuperuser},
		},
	}, http.StatusOK)
}

// listUsers supports ?search=, ?is_staff=, ?limit= and ?offset=.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseUserFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if users.Results == nil {
		users.Results = []models.User{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var request models.CreateUserRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.CreateUser(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().
		Int64("actor_id", actorID).
		Int64("created_user_id", user.UserID).
		Msg("user added through admin")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var request models.UpdateUserRequest
	if err = utils.ReadJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), userID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().
		Int64("actor_id", actorID).
		Int64("deleted_user_id", userID).
		Msg("user deleted through admin")
	w.WriteHeader(http.StatusNoContent)
}

func userIDFromPath(r *http.Request) (int64, error) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, errInvalidUserID
	}
	return userID, nil
}

func parseUserFilter(r *http.Request) (models.UserFilter, error) {
	query := r.URL.Query()
	filter := models.UserFilter{Search: query.Get("search")}
	validationErr := &validators.ValidationError{}

	if raw := query.Get("is_staff"); raw != "" {
		isStaff, err := strconv.ParseBool(raw)
		if err != nil {
			validationErr.Add("is_staff", "Must be a valid boolean.")
		} else {
			filter.IsStaff = &isStaff
		}
	}

	for name, dst := range map[string]*uint64{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			validationErr.Add(name, "A valid integer is required.")
			continue
		}
		*dst = value
	}

	if len(validationErr.Fields) > 0 {
		return models.UserFilter{}, validationErr
	}
	return filter, nil
}

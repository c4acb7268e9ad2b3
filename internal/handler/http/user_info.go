// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/dashboard-api/internal/utils"
)

// userInfo returns the principal resolved by the auth middleware.
func (h *Handler) userInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, r, utils.ErrAuthorizationHeaderMissing)
		return
	}

	utils.WriteJSON(w, user.Info(), http.StatusOK)
}

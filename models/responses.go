// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the body of every non-validation error response.
// The shape follows the one the frontend already parses:
// {"detail": "...", "code": "..."}.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// AdminIndex is the body of GET /admin/.
type AdminIndex struct {
	SiteHeader string       `json:"site_header"`
	Models     []AdminModel `json:"models"`
}

// AdminModel describes one model registered on the admin site.
type AdminModel struct {
	Name string `json:"name"`
	URL  string `json:"url"`

	// CanChange reports whether the current principal may create, edit or
	// delete objects of this model.
	CanChange bool `json:"can_change"`
}

// UserList is the body of GET /admin/users/.
type UserList struct {
	Count   uint64 `json:"count"`
	Results []User `json:"results"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials is the body of POST /api/token/.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /api/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// CreateUserRequest is the body of POST /admin/users/.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,max=150"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"required,min=8,maxbytes=72"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`

	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

// UpdateUserRequest is the body of PATCH /admin/users/{userID}/. Only the
// fields present in the body are changed.
type UpdateUserRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8,maxbytes=72"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsActive    *bool   `json:"is_active"`
}

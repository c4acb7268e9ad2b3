// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/dashboard-api/models"
)

// UserRepository persists [models.User] rows.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID set.
	// Returns ErrUsernameAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// ListUsers returns the users matching filter ordered by id.
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	// CountUsers returns the number of users matching filter, ignoring its
	// Limit and Offset.
	CountUsers(ctx context.Context, filter models.UserFilter) (uint64, error)

	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	DeleteUser(ctx context.Context, userID int64) error
}

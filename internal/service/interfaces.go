// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/dashboard-api/models"
)

// AuthService issues and verifies JWT token pairs.
type AuthService interface {
	// ObtainTokenPair checks the credentials and issues a refresh and an
	// access token. Any credential failure is ErrNoActiveAccount.
	ObtainTokenPair(ctx context.Context, credentials models.Credentials) (models.TokenPair, error)

	// RefreshAccessToken issues a new access token for a valid refresh token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (models.AccessToken, error)

	// Authenticate resolves an access token to its active owner.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
}

// UserService manages user accounts for the admin site and the management
// commands.
type UserService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) (models.UserList, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	UpdateUser(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error

	// EnsureSuperuser creates an active superuser unless the username is
	// taken. It reports whether a user was created.
	EnsureSuperuser(ctx context.Context, request models.CreateUserRequest) (bool, error)

	ChangePassword(ctx context.Context, username, password string) error
}

// AppInfoService exposes build and version information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// UserServiceWrapper defines middleware composition for UserService.
// Implementations wrap an existing UserService to add behavior such as
// validation.
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

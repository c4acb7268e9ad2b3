// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/dashboard-api/internal/config"
	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/store"
	"github.com/MKhiriev/dashboard-api/internal/utils"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials against bcrypt hashes stored by the
// UserRepository and issues HS256 signed token pairs.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{
		userRepository:       userRepository,
		validator:            validator,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		now:                  time.Now,
		logger:               logger,
	}
}

// dummyPasswordHash is compared against when the username is unknown so
// that both failure paths cost one bcrypt comparison.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, _ := utils.HashPassword("dashboard-api timing equalizer")
	return hash
})

// ObtainTokenPair authenticates credentials and issues a refresh and an
// access token for the user. The user's last login time is updated.
//
// Returns a *validators.ValidationError for a malformed body,
// ErrNoActiveAccount for unknown users, wrong passwords and inactive users,
// or a wrapped storage or signing error.
func (a *authService) ObtainTokenPair(ctx context.Context, credentials models.Credentials) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		utils.CheckPassword(dummyPasswordHash(), credentials.Password)
		log.Info().Str("username", credentials.Username).Msg("login attempt for unknown user")
		return models.TokenPair{}, ErrNoActiveAccount
	}
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user search by username failed")
		return models.TokenPair{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, credentials.Password) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.TokenPair{}, ErrNoActiveAccount
	}
	if !user.IsActive {
		log.Info().Int64("user_id", user.UserID).Msg("login attempt for inactive user")
		return models.TokenPair{}, ErrNoActiveAccount
	}

	refresh, err := a.createToken(user.UserID, models.RefreshTokenType, a.refreshTokenDuration)
	if err != nil {
		return models.TokenPair{}, err
	}
	access, err := a.createToken(user.UserID, models.AccessTokenType, a.accessTokenDuration)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err = a.userRepository.UpdateLastLogin(ctx, user.UserID, a.now()); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("error updating last login")
		return models.TokenPair{}, fmt.Errorf("error updating last login: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("token pair issued")
	return models.TokenPair{Refresh: refresh.String(), Access: access.String()}, nil
}

// RefreshAccessToken verifies refreshToken and issues a new access token
// for its owner.
//
// Returns ErrTokenIsExpiredOrInvalid for bad, expired or access-typed tokens
// and ErrNoActiveAccountForToken when the owner is gone or deactivated.
func (a *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (models.AccessToken, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.RefreshRequest{Refresh: refreshToken}); err != nil {
		return models.AccessToken{}, err
	}

	token, err := a.parseToken(refreshToken, models.RefreshTokenType)
	if err != nil {
		log.Info().Err(err).Msg("refresh token rejected")
		return models.AccessToken{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.AccessToken{}, ErrNoActiveAccountForToken
	}
	if err != nil {
		log.Err(err).Int64("user_id", token.UserID).Msg("user search by id failed")
		return models.AccessToken{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsActive {
		return models.AccessToken{}, ErrNoActiveAccountForToken
	}

	access, err := a.createToken(user.UserID, models.AccessTokenType, a.accessTokenDuration)
	if err != nil {
		return models.AccessToken{}, err
	}

	return models.AccessToken{Access: access.String()}, nil
}

// Authenticate verifies accessToken and loads its owner.
//
// Returns ErrTokenIsExpiredOrInvalid, ErrUserNotFound or ErrUserInactive.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	token, err := a.parseToken(accessToken, models.AccessTokenType)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsActive {
		return models.User{}, ErrUserInactive
	}

	return user, nil
}

func (a *authService) createToken(userID int64, tokenType models.TokenType, duration time.Duration) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, tokenType, duration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// parseToken normalises every validation failure (expired, wrong issuer,
// wrong type, malformed) to ErrTokenIsExpiredOrInvalid.
func (a *authService) parseToken(tokenString string, tokenType models.TokenType) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, tokenType)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}

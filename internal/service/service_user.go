// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/store"
	"github.com/MKhiriev/dashboard-api/internal/utils"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

// defaultPageSize applies when a listing does not ask for a limit.
const defaultPageSize = 100

type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService returns a UserService without input validation. Wrap it
// with NewUserValidationService for request-facing use.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	logger.Debug().Msg("creating user service")
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context, filter models.UserFilter) (models.UserList, error) {
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}

	count, err := s.userRepository.CountUsers(ctx, filter)
	if err != nil {
		return models.UserList{}, fmt.Errorf("error counting users: %w", err)
	}

	users, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return models.UserList{}, fmt.Errorf("error listing users: %w", err)
	}

	return models.UserList{Count: count, Results: users}, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user %d: %w", userID, err)
	}

	return user, nil
}

// CreateUser hashes the password and stores the user. IsActive defaults to
// true. A taken username is reported as a validation error on "username".
func (s *userService) CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := hashPassword(request.Password)
	if err != nil {
		return models.User{}, err
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	user, err := s.userRepository.CreateUser(ctx, models.User{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: hash,
		IsStaff:      request.IsStaff,
		IsSuperuser:  request.IsSuperuser,
		IsActive:     isActive,
	})
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		validationErr := &validators.ValidationError{}
		validationErr.Add("username", usernameTakenMessage)
		return models.User{}, validationErr
	}
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user created")
	return user, nil
}

// UpdateUser applies the fields present in request and returns the updated
// user.
func (s *userService) UpdateUser(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error) {
	update := models.UserUpdate{
		Email:       request.Email,
		IsStaff:     request.IsStaff,
		IsSuperuser: request.IsSuperuser,
		IsActive:    request.IsActive,
	}
	if request.Password != nil {
		hash, err := hashPassword(*request.Password)
		if err != nil {
			return models.User{}, err
		}
		update.PasswordHash = &hash
	}

	if update.Empty() {
		return models.User{}, ErrNothingToUpdate
	}

	err := s.userRepository.UpdateUser(ctx, userID, update)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error updating user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("user updated")
	return s.GetUser(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	err := s.userRepository.DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("user deleted")
	return nil
}

// EnsureSuperuser creates request as an active staff superuser when its
// username is free. An existing user is left untouched.
func (s *userService) EnsureSuperuser(ctx context.Context, request models.CreateUserRequest) (bool, error) {
	_, err := s.userRepository.FindUserByUsername(ctx, request.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return false, fmt.Errorf("error searching user %q: %w", request.Username, err)
	}

	isActive := true
	request.IsStaff = true
	request.IsSuperuser = true
	request.IsActive = &isActive

	if _, err = s.CreateUser(ctx, request); err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) ChangePassword(ctx context.Context, username, password string) error {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("error searching user %q: %w", username, err)
	}

	_, err = s.UpdateUser(ctx, user.UserID, models.UpdateUserRequest{Password: &password})
	return err
}

// hashPassword reports a password bcrypt cannot hash as a validation error
// on "password".
func hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		validationErr := &validators.ValidationError{}
		validationErr.Add("password", passwordTooLongMessage)
		return "", validationErr
	}
	return hash, err
}

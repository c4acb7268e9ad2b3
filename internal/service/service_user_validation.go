// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

// UserValidationService validates request payloads before they reach the
// wrapped UserService.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService(validator validators.Validator) UserServiceWrapper {
	return &UserValidationService{
		validator: validator,
	}
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.inner = inner
	return v
}

func (v *UserValidationService) ListUsers(ctx context.Context, filter models.UserFilter) (models.UserList, error) {
	return v.inner.ListUsers(ctx, filter)
}

func (v *UserValidationService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.GetUser(ctx, userID)
}

func (v *UserValidationService) CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, err
	}
	return v.inner.CreateUser(ctx, request)
}

func (v *UserValidationService) UpdateUser(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, err
	}
	return v.inner.UpdateUser(ctx, userID, request)
}

func (v *UserValidationService) DeleteUser(ctx context.Context, userID int64) error {
	return v.inner.DeleteUser(ctx, userID)
}

func (v *UserValidationService) EnsureSuperuser(ctx context.Context, request models.CreateUserRequest) (bool, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return false, err
	}
	return v.inner.EnsureSuperuser(ctx, request)
}

func (v *UserValidationService) ChangePassword(ctx context.Context, username, password string) error {
	request := models.CreateUserRequest{Username: username, Password: password}
	if err := v.validator.Validate(ctx, request); err != nil {
		return err
	}
	return v.inner.ChangePassword(ctx, username, password)
}

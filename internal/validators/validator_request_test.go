// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dashboard-api/models"
)

func ptr[T any](v T) *T { return &v }

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name       string
		obj        any
		wantFields map[string][]string
	}{
		{
			name: "valid credentials",
			obj:  models.Credentials{Username: "admin", Password: "secret"},
		},
		{
			name: "empty credentials",
			obj:  &models.Credentials{},
			wantFields: map[string][]string{
				"username": {"This field is required."},
				"password": {"This field is required."},
			},
		},
		{
			name:       "missing refresh",
			obj:        models.RefreshRequest{},
			wantFields: map[string][]string{"refresh": {"This field is required."}},
		},
		{
			name: "create user with bad email and short password",
			obj:  models.CreateUserRequest{Username: "kate", Email: "nope", Password: "short"},
			wantFields: map[string][]string{
				"email":    {"Enter a valid email address."},
				"password": {"Ensure this field has at least 8 characters."},
			},
		},
		{
			name: "create user without email",
			obj:  models.CreateUserRequest{Username: "kate", Password: "long enough"},
		},
		{
			name: "update with nil fields",
			obj:  models.UpdateUserRequest{},
		},
		{
			name:       "update with long password",
			obj:        models.UpdateUserRequest{Password: ptr("0123456789012345678901234567890123456789012345678901234567890123456789012")},
			wantFields: map[string][]string{"password": {"Ensure this field has no more than 72 bytes."}},
		},
		{
			name:       "create user with multibyte password over 72 bytes",
			obj:        models.CreateUserRequest{Username: "kate", Password: strings.Repeat("é", 40)},
			wantFields: map[string][]string{"password": {"Ensure this field has no more than 72 bytes."}},
		},
		{
			name: "create user with multibyte password within 72 bytes",
			obj:  models.CreateUserRequest{Username: "kate", Password: strings.Repeat("é", 36)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.wantFields, validationErr.Fields)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRequestValidator_UnsupportedType(t *testing.T) {
	v := NewRequestValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.Credentials)(nil)), ErrUnsupportedType)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{}
	err.Add("username", "This field is required.")
	err.Add("email", "Enter a valid email address.")

	assert.Equal(t, "invalid input: email: Enter a valid email address.; username: This field is required.", err.Error())
}

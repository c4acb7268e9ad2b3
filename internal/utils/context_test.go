// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/dashboard-api/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "user", UserCtxKey.String())
}

func TestUserContext(t *testing.T) {
	user := models.User{UserID: 42, Username: "admin", IsStaff: true}
	ctx := WithUser(context.Background(), user)

	got, ok := GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, got)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestUserContext_Missing(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	assert.False(t, ok)

	id, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestUserContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, int64(42))

	_, ok := GetUserFromContext(ctx)
	assert.False(t, ok)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dashboard-api/models"
)

var (
	pgBuilder     = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildCreateUserQuery(t *testing.T) {
	joined := time.Now()
	user := models.User{Username: "john", Email: "j@x.io", PasswordHash: "h", IsActive: true, DateJoined: joined}

	query, args, err := buildCreateUserQuery(pgBuilder, user)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO users"))
	assert.Contains(t, query, "$7")
	assert.True(t, strings.HasSuffix(query, "RETURNING user_id"))
	assert.Equal(t, []any{"john", "j@x.io", "h", false, false, true, joined}, args)

	query, _, err = buildCreateUserQuery(sqliteBuilder, user)
	require.NoError(t, err)
	assert.NotContains(t, query, "$1")
	assert.Contains(t, query, "?")
}

func Test_buildFindUserQuery_SelectsAllColumns(t *testing.T) {
	query, args, err := buildFindUserQuery(pgBuilder, sq.Eq{"username": "john"})
	require.NoError(t, err)

	for _, c := range userColumns {
		assert.Contains(t, query, c)
	}
	assert.Contains(t, query, "WHERE username = $1")
	assert.Equal(t, []any{"john"}, args)
}

func Test_buildListUsersQuery(t *testing.T) {
	staff := true

	tests := []struct {
		name         string
		filter       models.UserFilter
		wantContains []string
		wantMissing  []string
		wantArgs     []any
	}{
		{
			name:         "no filter",
			filter:       models.UserFilter{},
			wantContains: []string{"ORDER BY user_id"},
			wantMissing:  []string{"WHERE", "LIMIT", "OFFSET"},
		},
		{
			name:         "search is lower-cased",
			filter:       models.UserFilter{Search: "JoHn"},
			wantContains: []string{`LOWER(username) LIKE $1 ESCAPE '\'`, `LOWER(email) LIKE $2 ESCAPE '\'`},
			wantArgs:     []any{"%john%", "%john%"},
		},
		{
			name:         "search wildcards match literally",
			filter:       models.UserFilter{Search: `50%_a\b`},
			wantContains: []string{"ESCAPE"},
			wantArgs:     []any{`%50\%\_a\\b%`, `%50\%\_a\\b%`},
		},
		{
			name:         "staff and paging",
			filter:       models.UserFilter{IsStaff: &staff, Limit: 10, Offset: 20},
			wantContains: []string{"is_staff = $1", "LIMIT 10", "OFFSET 20"},
			wantArgs:     []any{true},
		},
		{
			name:         "offset without limit",
			filter:       models.UserFilter{Offset: 5},
			wantContains: []string{"LIMIT", "OFFSET 5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListUsersQuery(pgBuilder, tt.filter)
			require.NoError(t, err)

			for _, s := range tt.wantContains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.wantMissing {
				assert.NotContains(t, query, s)
			}
			assert.ElementsMatch(t, tt.wantArgs, args)
		})
	}
}

func Test_buildCountUsersQuery_IgnoresPaging(t *testing.T) {
	query, _, err := buildCountUsersQuery(pgBuilder, models.UserFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)

	assert.Contains(t, query, "COUNT(*)")
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
}

func Test_buildUpdateUserQuery(t *testing.T) {
	email := "new@x.io"
	active := false

	query, args, err := buildUpdateUserQuery(pgBuilder, 3, models.UserUpdate{Email: &email, IsActive: &active})
	require.NoError(t, err)

	// squirrel sorts SetMap keys
	assert.Equal(t, "UPDATE users SET email = $1, is_active = $2 WHERE user_id = $3", query)
	assert.Equal(t, []any{email, active, int64(3)}, args)

	_, _, err = buildUpdateUserQuery(pgBuilder, 3, models.UserUpdate{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func Test_buildDeleteUserQuery(t *testing.T) {
	query, args, err := buildDeleteUserQuery(sqliteBuilder, 8)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE user_id = ?", query)
	assert.Equal(t, []any{int64(8)}, args)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/dashboard-api/models"
)

const usersTable = "users"

var userColumns = []string{
	"user_id",
	"username",
	"email",
	"password_hash",
	"is_staff",
	"is_superuser",
	"is_active",
	"date_joined",
	"last_login",
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "email", "password_hash", "is_staff", "is_superuser", "is_active", "date_joined").
		Values(user.Username, user.Email, user.PasswordHash, user.IsStaff, user.IsSuperuser, user.IsActive, user.DateJoined).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// applyUserFilter adds the WHERE clauses of filter. Search is a literal
// substring matched against lower-cased username and email.
func applyUserFilter(q sq.SelectBuilder, filter models.UserFilter) sq.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		q = q.Where(sq.Or{
			sq.Expr(`LOWER(username) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(email) LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if filter.IsStaff != nil {
		q = q.Where(sq.Eq{"is_staff": *filter.IsStaff})
	}
	return q
}

func buildListUsersQuery(b sq.StatementBuilderType, filter models.UserFilter) (string, []any, error) {
	q := applyUserFilter(b.Select(userColumns...).From(usersTable), filter).
		OrderBy("user_id")

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		// sqlite rejects OFFSET without LIMIT
		if filter.Limit == 0 {
			q = q.Limit(uint64(1<<63 - 1))
		}
		q = q.Offset(filter.Offset)
	}

	return q.ToSql()
}

func buildCountUsersQuery(b sq.StatementBuilderType, filter models.UserFilter) (string, []any, error) {
	return applyUserFilter(b.Select("COUNT(*)").From(usersTable), filter).ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, userID int64, update models.UserUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrEmptyUpdate
	}

	set := make(map[string]any, 5)
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["password_hash"] = *update.PasswordHash
	}
	if update.IsStaff != nil {
		set["is_staff"] = *update.IsStaff
	}
	if update.IsSuperuser != nil {
		set["is_superuser"] = *update.IsSuperuser
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	return b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpdateLastLoginQuery(b sq.StatementBuilderType, userID int64, at time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("last_login", at).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row selected with userColumns.
func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		lastLogin sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.IsActive,
		&user.DateJoined,
		&lastLogin,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return user, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account known to the backend. Tokens are issued for users and
// the admin site manages them.
//
// PasswordHash is a bcrypt hash and is never serialised.
type User struct {
	// UserID is the primary key; it is also the "sub" claim of every token
	// issued for the user.
	UserID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is optional and may be empty.
	Email string `json:"email"`

	PasswordHash string `json:"-"`

	// IsStaff grants read access to the admin site.
	IsStaff bool `json:"is_staff"`

	// IsSuperuser grants write access to the admin site.
	IsSuperuser bool `json:"is_superuser"`

	// IsActive users can obtain and use tokens. Deactivated users are
	// rejected at every authentication step.
	IsActive bool `json:"is_active"`

	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Info returns the public view of the user exposed by /api/user/info/.
func (u User) Info() UserInfo {
	return UserInfo{
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff,
	}
}

// UserInfo is the response body of the user info endpoint.
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

// UserUpdate carries a partial update of a user row. Nil fields are left
// untouched.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	IsStaff      *bool
	IsSuperuser  *bool
	IsActive     *bool
}

// Empty reports whether the update would not change anything.
func (u UserUpdate) Empty() bool {
	return u.Email == nil &&
		u.PasswordHash == nil &&
		u.IsStaff == nil &&
		u.IsSuperuser == nil &&
		u.IsActive == nil
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	// Search matches username or email case-insensitively.
	Search string

	// IsStaff, when set, keeps only staff or only non-staff users.
	IsStaff *bool

	Limit  uint64
	Offset uint64
}

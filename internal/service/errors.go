// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNoActiveAccount is returned for unknown usernames, wrong passwords
	// and inactive accounts alike.
	ErrNoActiveAccount = errors.New("no active account found with the given credentials")

	// ErrNoActiveAccountForToken is returned when a valid refresh token
	// belongs to a deleted or deactivated user.
	ErrNoActiveAccountForToken = errors.New("no active account found for the given token")

	ErrTokenIsExpiredOrInvalid = errors.New("token is invalid or expired")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is inactive")

	ErrNothingToUpdate = errors.New("at least one field must be provided for update")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// usernameTakenMessage is reported on the "username" field when a user with
// the same name exists.
const usernameTakenMessage = "A user with that username already exists."

// passwordTooLongMessage is reported on "password" when bcrypt refuses it.
const passwordTooLongMessage = "Ensure this field has no more than 72 bytes."

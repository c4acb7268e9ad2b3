// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Route table errors returned by Init and Reverse.
var (
	ErrDuplicateRoute     = errors.New("duplicate route")
	ErrDuplicateRouteName = errors.New("duplicate route name")
	ErrEmptyRouteName     = errors.New("route name is empty")
	ErrUnknownRouteName   = errors.New("unknown route name")
	ErrReverseParams      = errors.New("wrong number of route parameters")
)

// Request errors produced by the handlers and middleware themselves.
var (
	errNotFound      = errors.New("not found")
	errForbidden     = errors.New("permission denied")
	errThrottled     = errors.New("request was throttled")
	errInvalidUserID = errors.New("invalid user id")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the user and
// token services. Rules live in `validate` struct tags on the models types;
// violations come back as *ValidationError keyed by JSON field name, which
// the HTTP layer renders as a 400 field map and the manage commands print
// as is.
package validators

import "context"

// Validator validates a request struct. When field names are given only
// those Go struct fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

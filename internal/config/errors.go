package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid. The returned errors wrap these sentinels with a
// description of the offending field.
var (
	// ErrInvalidAppConfigs indicates invalid token settings (for example,
	// a missing sign key or a non-positive token lifetime).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdminConfigs indicates a partially configured bootstrap
	// superuser.
	ErrInvalidAdminConfigs = errors.New("invalid admin configuration")
)

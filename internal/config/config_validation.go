// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

const minAdminPasswordLength = 8

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants needed to run the HTTP server. All violations are reported at
// once.
func (cfg *StructuredConfig) validate() error {
	return errors.Join(
		cfg.App.validate(),
		cfg.Server.validate(),
		cfg.Storage.validate(),
		cfg.Admin.validate(),
	)
}

// validateStorage is the reduced check used by the management CLI.
func (cfg *StructuredConfig) validateStorage() error {
	return cfg.Storage.validate()
}

func (a App) validate() error {
	switch {
	case a.TokenSignKey == "":
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	case a.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is empty", ErrInvalidAppConfigs)
	case a.AccessTokenDuration <= 0:
		return fmt.Errorf("%w: access token duration must be positive", ErrInvalidAppConfigs)
	case a.RefreshTokenDuration <= 0:
		return fmt.Errorf("%w: refresh token duration must be positive", ErrInvalidAppConfigs)
	}
	return nil
}

func (s Server) validate() error {
	switch {
	case s.HTTPAddress == "":
		return fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs)
	case s.RequestTimeout < 0 || s.ShutdownTimeout < 0:
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidServerConfigs)
	case s.TokenRateLimit < 0:
		return fmt.Errorf("%w: token rate limit must not be negative", ErrInvalidServerConfigs)
	case s.TokenRateLimit > 0 && s.TokenRateBurst < 1:
		return fmt.Errorf("%w: token rate burst must be at least 1", ErrInvalidServerConfigs)
	}
	return nil
}

func (s Storage) validate() error {
	if s.DB.Driver != DriverPostgres && s.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.DB.Driver)
	}
	if s.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}
	return nil
}

func (a Admin) validate() error {
	if !a.Enabled() {
		return nil
	}
	if a.Username == "" {
		return fmt.Errorf("%w: admin username is empty", ErrInvalidAdminConfigs)
	}
	if len(a.Password) < minAdminPasswordLength {
		return fmt.Errorf("%w: admin password must be at least %d characters",
			ErrInvalidAdminConfigs, minAdminPasswordLength)
	}
	return nil
}

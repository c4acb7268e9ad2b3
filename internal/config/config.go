// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging defaults, environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network, timeout, CORS and throttling settings of the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Admin optionally describes a superuser that is created at startup
	// when it does not exist yet.
	Admin Admin `envPrefix:"ADMIN_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the path of the .env file loaded before environment
	// variables are parsed. Populated via the DOTENV environment variable.
	DotEnvPath string `env:"DOTENV"`
}

// App holds application-level configuration values that control token
// lifecycle, logging and versioning.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// checked on every parsed one.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration is the lifetime of access tokens.
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the lifetime of refresh tokens.
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is exposed via the /api/version/ endpoint. Falls back to the
	// build version when empty.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CORSAllowedOrigins lists the origins of browser frontends allowed to
	// call the API.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// TokenRateLimit is the sustained number of requests per second a single
	// client IP may send to the token endpoints. Zero disables throttling.
	// Env: SERVER_TOKEN_RATE_LIMIT
	TokenRateLimit float64 `env:"TOKEN_RATE_LIMIT"`

	// TokenRateBurst is the bucket size of the token endpoint limiter.
	// Env: SERVER_TOKEN_RATE_BURST
	TokenRateBurst int `env:"TOKEN_RATE_BURST"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the backend: "postgres" or "sqlite".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name: a postgres URL or a sqlite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Admin describes the bootstrap superuser.
type Admin struct {
	// Env: ADMIN_USERNAME
	Username string `env:"USERNAME"`
	// Env: ADMIN_EMAIL
	Email string `env:"EMAIL"`
	// Env: ADMIN_PASSWORD
	Password string `env:"PASSWORD"`
}

// Enabled reports whether a bootstrap superuser is configured.
func (a Admin) Enabled() bool {
	return a.Username != "" || a.Password != ""
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          "dashboard-api",
			AccessTokenDuration:  5 * time.Minute,
			RefreshTokenDuration: 24 * time.Hour,
			LogLevel:             "debug",
		},
		Server: Server{
			HTTPAddress:        "localhost:8000",
			RequestTimeout:     30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			TokenRateLimit:     1,
			TokenRateBurst:     5,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
			},
		},
		DotEnvPath: defaultDotEnvPath,
	}
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Defaults
//  2. Environment variables (and the .env file)
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build((*StructuredConfig).validate)
}

// GetManagementConfig loads the configuration used by the management CLI.
// Flags are not parsed (the CLI owns them) and only the storage section is
// validated.
func GetManagementConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withJSON().
		build((*StructuredConfig).validateStorage)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/dashboard-api/internal/config"
	"github.com/MKhiriev/dashboard-api/internal/logger"
)

// Storages groups the repositories backed by a single database connection.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages connects to the database selected by cfg.DB.Driver and builds
// the repositories on top of it. Migrations are not applied; call
// [Storages.Migrate].
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		db:             db,
	}, nil
}

// Migrate applies pending schema migrations.
func (s *Storages) Migrate() error {
	if err := s.db.Migrate(); err != nil {
		s.db.logger.Err(err).Str("func", "*Storages.Migrate").Msg("error applying migrations")
		return err
	}
	s.db.logger.Info().Str("func", "*Storages.Migrate").Msg("migrations applied")
	return nil
}

// Close closes the underlying connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package management implements the administrative command line of the
// dashboard API: schema migrations, superuser bootstrap, password changes
// and a route listing.
package management

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/dashboard-api/internal/config"
	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/store"
	"github.com/MKhiriev/dashboard-api/internal/validators"
)

// Runtime holds what the database-backed commands operate on.
type Runtime struct {
	Migrate func() error
	Users   service.UserService
	Close   func() error
}

// Bootstrap opens the runtime. It is called once per command that needs
// the database and never for "routes".
type Bootstrap func(ctx context.Context) (*Runtime, error)

// DefaultBootstrap loads the management configuration and opens the
// configured database.
func DefaultBootstrap(log *logger.Logger) Bootstrap {
	return func(ctx context.Context) (*Runtime, error) {
		cfg, err := config.GetManagementConfig()
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}

		storages, err := store.NewStorages(ctx, cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("error opening storage: %w", err)
		}

		return NewRuntime(storages, log), nil
	}
}

// NewRuntime builds a runtime over already opened storages.
func NewRuntime(storages *store.Storages, log *logger.Logger) *Runtime {
	users := service.NewUserValidationService(validators.NewRequestValidator()).
		Wrap(service.NewUserService(storages.UserRepository, log))

	return &Runtime{
		Migrate: storages.Migrate,
		Users:   users,
		Close:   storages.Close,
	}
}

type app struct {
	bootstrap Bootstrap
	logger    *logger.Logger
}

// NewApp returns the manage command line. Command output goes to out.
func NewApp(bootstrap Bootstrap, log *logger.Logger, out io.Writer) *cli.App {
	a := &app{bootstrap: bootstrap, logger: log}

	return &cli.App{
		Name:      "manage",
		Usage:     "dashboard API administrative tasks",
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			a.migrateCommand(),
			a.createSuperuserCommand(),
			a.changePasswordCommand(),
			a.routesCommand(),
		},
	}
}

// withRuntime opens the runtime for the duration of fn.
func (a *app) withRuntime(c *cli.Context, fn func(*Runtime) error) error {
	runtime, err := a.bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			a.logger.Err(err).Str("func", "*app.withRuntime").Msg("error closing storage")
		}
	}()

	return fn(runtime)
}

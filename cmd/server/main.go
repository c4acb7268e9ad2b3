// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/dashboard-api/internal/config"
	httphandler "github.com/MKhiriev/dashboard-api/internal/handler/http"
	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/metrics"
	"github.com/MKhiriev/dashboard-api/internal/server"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/store"
	"github.com/MKhiriev/dashboard-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("dashboard-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("token_issuer", cfg.App.TokenIssuer).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	if err = storages.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.Admin.Enabled() {
		created, err := services.UserService.EnsureSuperuser(ctx, models.CreateUserRequest{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("error bootstrapping admin user")
		}
		log.Info().Str("username", cfg.Admin.Username).Bool("created", created).Msg("admin user checked")
	}

	handler := httphandler.NewHandler(services, cfg.Server, metrics.New(), log)
	router, err := handler.Init()
	if err != nil {
		log.Fatal().Err(err).Msg("error building router")
	}

	srv, err := server.NewServer(router, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		storages.Close()
		os.Exit(1)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/management"
)

func main() {
	log := logger.NewLogger("manage")
	if err := log.SetLevel("warn"); err != nil {
		log.Fatal().Err(err).Send()
	}

	app := management.NewApp(management.DefaultBootstrap(log), log, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/dashboard-api/internal/logger"
)

// gooseLogger forwards goose output to the application log.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info().Str("component", "goose").Msg(gooseMessage(format, v...))
}

// Fatalf exits the process, as goose expects.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Fatal().Str("component", "goose").Msg(gooseMessage(format, v...))
}

func gooseMessage(format string, v ...any) string {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	return strings.TrimPrefix(msg, "goose: ")
}

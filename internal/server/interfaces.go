// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the HTTP server.
type Server interface {
	// RunServer serves requests until SIGINT, SIGTERM or SIGQUIT arrives,
	// then shuts down gracefully.
	RunServer() error

	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully.
	Run(ctx context.Context) error
}

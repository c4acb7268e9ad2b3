// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP API.
//
// It owns the [http.Server] lifecycle: listening, signal handling and a
// graceful shutdown bounded by the configured shutdown timeout.
package server

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// It owns the declarative route table, the chi router built from it, the
// request handlers and the middleware chain. Authentication, staff checks,
// request tracing, access logging, metrics and throttling are handled here
// before requests are delegated to the service layer. Errors are rendered in
// the {"detail", "code"} format the frontend expects.
package http

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dashboard-api/internal/config"
	"github.com/MKhiriev/dashboard-api/internal/logger"
)

func helloHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	})
}

func newTestServer(t *testing.T, handler http.Handler, cfg config.Server) *server {
	t.Helper()

	s, err := NewServer(handler, cfg, logger.Nop())
	require.NoError(t, err)
	return s.(*server)
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(helloHandler(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)

	_, err = NewServer(nil, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	h := newHTTPServer(helloHandler(), config.Server{HTTPAddress: ":8000", RequestTimeout: 30 * time.Second}, logger.Nop())

	assert.Equal(t, ":8000", h.server.Addr)
	assert.Equal(t, 30*time.Second, h.server.ReadTimeout)
	assert.Equal(t, 35*time.Second, h.server.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, h.server.ReadHeaderTimeout)

	h = newHTTPServer(helloHandler(), config.Server{HTTPAddress: ":8000"}, logger.Nop())
	assert.Zero(t, h.server.WriteTimeout)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := newTestServer(t, helloHandler(), config.Server{HTTPAddress: "127.0.0.1:0", ShutdownTimeout: time.Second})

	listener, err := s.httpServer.listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	cancel()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_WaitsForInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, "done")
	})
	s := newTestServer(t, slow, config.Server{HTTPAddress: "127.0.0.1:0", ShutdownTimeout: 5 * time.Second})

	listener, err := s.httpServer.listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, listener) }()

	type result struct {
		status int
		err    error
	}
	responses := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + listener.Addr().String() + "/")
		if err != nil {
			responses <- result{err: err}
			return
		}
		resp.Body.Close()
		responses <- result{status: resp.StatusCode}
	}()

	<-started
	cancel()

	got := <-responses
	require.NoError(t, got.err)
	assert.Equal(t, http.StatusOK, got.status)
	assert.NoError(t, <-done)
}

func TestRun_AddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	s := newTestServer(t, helloHandler(), config.Server{HTTPAddress: taken.Addr().String()})

	err = s.Run(context.Background())

	assert.Error(t, err)
}

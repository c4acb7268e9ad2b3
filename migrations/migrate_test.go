// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dashboard-api/internal/logger"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: goose's first query fails
	err = Migrate(db, DialectPostgres, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil, DialectSQLite, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "mysql", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, Migrate(db, DialectSQLite, nil))
	// second run is a no-op
	require.NoError(t, Migrate(db, DialectSQLite, nil))

	_, err = db.Exec(`INSERT INTO users (username, password_hash) VALUES ('admin', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username, password_hash) VALUES ('admin', 'y')`)
	assert.Error(t, err, "username must be unique")

	var isActive, isStaff bool
	require.NoError(t, db.QueryRow(`SELECT is_active, is_staff FROM users WHERE username = 'admin'`).Scan(&isActive, &isStaff))
	assert.True(t, isActive)
	assert.False(t, isStaff)
}

func TestMigrate_LogsThroughAppLogger(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	require.NoError(t, Migrate(db, DialectSQLite, log))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		assert.Equal(t, "goose", entry["component"])
		assert.Equal(t, "info", entry["level"])
	}
	assert.Contains(t, buf.String(), "OK   00001_create_users.sql")
	assert.Contains(t, buf.String(), "successfully migrated database to version: 1")
}

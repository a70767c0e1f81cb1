package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jotterhq/jotter/internal/config"
	"github.com/jotterhq/jotter/internal/db"
)

// OpenTestDB connects to the database named by TEST_DB_* env vars and runs
// migrations. Tests calling it are skipped when TEST_DB_HOST is unset.
func OpenTestDB(t *testing.T) *sql.DB {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping integration test")
	}
	port := 5432
	if v := os.Getenv("TEST_DB_PORT"); v != "" {
		_, _ = fmt.Sscanf(v, "%d", &port)
	}
	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: envOr("TEST_DB_PASSWORD", "postgres"),
		DBName:   envOr("TEST_DB_NAME", "jotter_test"),
		SSLMode:  "disable",
	}
	conn, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations(conn))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Reset truncates all tables so each test starts clean.
func Reset(t *testing.T, conn *sql.DB) {
	_, err := conn.Exec(`TRUNCATE users, folders, documents, document_versions, tags, document_tags, shares, comments, assets CASCADE`)
	require.NoError(t, err)
}

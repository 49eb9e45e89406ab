package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/database"
	"github.com/cleberrangel/pendientes-api/internal/migration"
	"github.com/stretchr/testify/require"
)

// setupTestDB cria um banco migrado. Usa SQLite em arquivo temporário, ou
// PostgreSQL quando TEST_DB_DRIVER=postgres.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if os.Getenv("TEST_DB_DRIVER") == database.DriverPostgres {
		return setupPostgres(t)
	}

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewMigrator(db, database.DriverSQLite).Run())
	return db
}

func setupPostgres(t *testing.T) *sql.DB {
	dbConfig := database.Config{
		Driver:   database.DriverPostgres,
		Host:     getEnvOrDefault("TEST_DB_HOST", "127.0.0.1"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "5432"),
		User:     getEnvOrDefault("TEST_DB_USER", "postgres"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		DBName:   fmt.Sprintf("test_pendientes_%d", time.Now().UnixNano()),
		SSLMode:  "disable",
	}

	adminConfig := dbConfig
	adminConfig.DBName = "postgres"

	adminDB, err := database.Connect(adminConfig)
	if err != nil {
		t.Skipf("Pulando teste: não foi possível conectar ao PostgreSQL: %v", err)
	}
	defer adminDB.Close()

	_, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", dbConfig.DBName))
	require.NoError(t, err)

	testDB, err := database.Connect(dbConfig)
	require.NoError(t, err)
	require.NoError(t, migration.NewMigrator(testDB, database.DriverPostgres).Run())

	t.Cleanup(func() {
		testDB.Close()
		adminDB, _ := database.Connect(adminConfig)
		if adminDB != nil {
			adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbConfig.DBName))
			adminDB.Close()
		}
	})

	return testDB
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intPtr(v int) *int { return &v }

var ctx = context.Background()

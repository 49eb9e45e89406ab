package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "migr.db")+"?_busy_timeout=5000")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func latestVersion() int {
	latest := 0
	for _, m := range getAllMigrations() {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}

func columnNames(t *testing.T, db *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := db.Query("SELECT name FROM pragma_table_info('" + table + "')")
	require.NoError(t, err)
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols[name] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestRunCreatesSchemaOnEmptyDatabase(t *testing.T) {
	db := openSQLite(t)
	m := NewMigrator(db, "sqlite3")

	require.NoError(t, m.Run())

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, latestVersion(), version)

	cols := columnNames(t, db, "pendientes")
	for _, c := range []string{"fecha_limite", "dias_antes_notificacion", "cc_emails", "ultima_notificacion"} {
		assert.True(t, cols[c], "coluna %s ausente", c)
	}
	assert.True(t, columnNames(t, db, "client_tasks")["created_at"])
	assert.True(t, columnNames(t, db, "clientes")["check_estado"])
}

func TestRunIsIdempotent(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, NewMigrator(db, "sqlite3").Run())
	require.NoError(t, NewMigrator(db, "sqlite3").Run())

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, len(getAllMigrations()), applied)
}

func TestRollbackRevertsToTargetVersion(t *testing.T) {
	db := openSQLite(t)
	m := NewMigrator(db, "sqlite3")
	require.NoError(t, m.Run())

	require.NoError(t, m.Rollback(7))

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 7, version)
	cols := columnNames(t, db, "pendientes")
	assert.False(t, cols["ultima_notificacion"])
	assert.True(t, cols["cc_emails"])

	var indexes int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'",
	).Scan(&indexes))
	assert.Zero(t, indexes)

	// Reaplica até a versão mais recente
	require.NoError(t, NewMigrator(db, "sqlite3").Run())
	assert.True(t, columnNames(t, db, "pendientes")["ultima_notificacion"])
}

func TestRollbackToZeroDropsTables(t *testing.T) {
	db := openSQLite(t)
	m := NewMigrator(db, "sqlite3")
	require.NoError(t, m.Run())

	require.NoError(t, m.Rollback(0))

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Zero(t, version)

	var tables int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('pendientes', 'clientes', 'client_tasks')",
	).Scan(&tables))
	assert.Zero(t, tables)

	assert.Error(t, m.Rollback(-1))
}

func TestRunToleratesColumnsFromLegacyBootstrap(t *testing.T) {
	db := openSQLite(t)

	// Esquema criado pela versão antiga, sem schema_migrations
	_, err := db.Exec(`
		CREATE TABLE pendientes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fecha TEXT NOT NULL,
			actividad TEXT NOT NULL,
			descripcion TEXT,
			empresa TEXT,
			estado TEXT DEFAULT 'Pendiente',
			observaciones TEXT,
			fecha_limite TEXT,
			email_notificacion TEXT,
			dias_antes_notificacion INTEGER DEFAULT 3
		);
		CREATE TABLE clientes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			empresa TEXT NOT NULL,
			observaciones TEXT,
			check_estado INTEGER DEFAULT 0,
			procedimiento TEXT,
			estado TEXT DEFAULT 'Pendiente'
		);
		INSERT INTO pendientes (fecha, actividad, fecha_limite) VALUES ('2025-06-01', 'Declaración', '2025-06-12');
	`)
	require.NoError(t, err)

	m := NewMigrator(db, "sqlite3")
	require.NoError(t, m.Run())

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, latestVersion(), version)

	var actividad string
	require.NoError(t, db.QueryRow("SELECT actividad FROM pendientes").Scan(&actividad))
	assert.Equal(t, "Declaración", actividad)
}

func TestRenderSelectsIdentityPerDriver(t *testing.T) {
	sqlite := &Migrator{driver: "sqlite3"}
	postgres := &Migrator{driver: "postgres"}

	assert.Equal(t, "id INTEGER PRIMARY KEY AUTOINCREMENT", sqlite.render("id {{id}}"))
	assert.Equal(t, "id SERIAL PRIMARY KEY", postgres.render("id {{id}}"))
}

func TestIsDuplicateColumn(t *testing.T) {
	assert.True(t, isDuplicateColumn(errors.New("duplicate column name: cc_emails")))
	assert.True(t, isDuplicateColumn(&pq.Error{Code: "42701"}))
	assert.False(t, isDuplicateColumn(&pq.Error{Code: "42P01"}))
	assert.False(t, isDuplicateColumn(errors.New("no such table: pendientes")))
}

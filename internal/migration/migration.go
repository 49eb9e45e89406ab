package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/lib/pq"
)

// Migration representa uma migração de banco de dados
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
	// AddsColumn marca migrações que só adicionam colunas; em bancos criados
	// pela versão antiga a coluna pode já existir.
	AddsColumn bool
}

// Migrator gerencia as migrações do banco de dados
type Migrator struct {
	db         *sql.DB
	driver     string
	migrations []Migration
}

// NewMigrator cria um novo migrator para o driver informado ("sqlite3" ou "postgres")
func NewMigrator(db *sql.DB, driver string) *Migrator {
	return &Migrator{
		db:         db,
		driver:     driver,
		migrations: getAllMigrations(),
	}
}

// Run executa todas as migrações pendentes
func (m *Migrator) Run() error {
	log := logger.Global()

	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrações: %w", err)
	}

	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return fmt.Errorf("erro ao obter versão atual: %w", err)
	}

	log.Info().Int("current_version", currentVersion).Msg("Versão atual do banco de dados")

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})

	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Info().
			Int("version", migration.Version).
			Str("name", migration.Name).
			Msg("Executando migração")

		err := m.runMigration(migration)
		if err != nil && migration.AddsColumn && isDuplicateColumn(err) {
			log.Warn().
				Int("version", migration.Version).
				Str("name", migration.Name).
				Msg("Coluna já existe, registrando migração sem alterações")
			err = m.recordVersion(migration.Version)
		}
		if err != nil {
			return fmt.Errorf("erro ao executar migração %d (%s): %w",
				migration.Version, migration.Name, err)
		}

		log.Info().
			Int("version", migration.Version).
			Str("name", migration.Name).
			Msg("Migração executada com sucesso")
	}

	return nil
}

// Rollback desfaz, em ordem decrescente, as migrações acima de target
func (m *Migrator) Rollback(target int) error {
	log := logger.Global()

	if target < 0 {
		return fmt.Errorf("versão alvo inválida: %d", target)
	}
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrações: %w", err)
	}

	currentVersion, err := m.CurrentVersion()
	if err != nil {
		return fmt.Errorf("erro ao obter versão atual: %w", err)
	}

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version > m.migrations[j].Version
	})

	for _, migration := range m.migrations {
		if migration.Version > currentVersion || migration.Version <= target {
			continue
		}

		log.Info().
			Int("version", migration.Version).
			Str("name", migration.Name).
			Msg("Revertendo migração")

		if err := m.revertMigration(migration); err != nil {
			return fmt.Errorf("erro ao reverter migração %d (%s): %w",
				migration.Version, migration.Name, err)
		}
	}

	return nil
}

// CurrentVersion obtém a versão atual do banco
func (m *Migrator) CurrentVersion() (int, error) {
	var version int
	query := "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"
	if err := m.db.QueryRow(query).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// createMigrationsTable cria a tabela de controle de migrações
func (m *Migrator) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.Exec(query)
	return err
}

// runMigration executa uma migração específica
func (m *Migrator) runMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.render(migration.Up)); err != nil {
		return err
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES ($1)",
		migration.Version,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// revertMigration executa o Down e remove o registro da versão
func (m *Migrator) revertMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if migration.Down != "" {
		if _, err := tx.Exec(m.render(migration.Down)); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		"DELETE FROM schema_migrations WHERE version = $1",
		migration.Version,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (m *Migrator) recordVersion(version int) error {
	_, err := m.db.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", version)
	return err
}

// render substitui os marcadores de dialeto do SQL
func (m *Migrator) render(query string) string {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if m.driver == "postgres" {
		id = "SERIAL PRIMARY KEY"
	}
	return strings.ReplaceAll(query, "{{id}}", id)
}

// isDuplicateColumn reconhece o erro de coluna existente em ambos os bancos
func isDuplicateColumn(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42701"
	}
	return strings.Contains(err.Error(), "duplicate column name")
}

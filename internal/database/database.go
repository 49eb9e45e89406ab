package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config contém as configurações de conexão com o banco
type Config struct {
	Driver string
	// SQLite
	Path string
	// PostgreSQL
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Tempo máximo de espera por locks do banco
	LockTimeout time.Duration
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// PoolStats contains database connection pool statistics
type PoolStats struct {
	MaxOpenConnections int   `json:"max_open_connections"`
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"wait_count"`
	WaitDuration       int64 `json:"wait_duration_ms"`
}

// GetPoolStats returns current connection pool statistics
func GetPoolStats(db *sql.DB) PoolStats {
	stats := db.Stats()
	return PoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.Milliseconds(),
	}
}

// DSN monta a string de conexão do driver configurado
func (c Config) DSN() (string, error) {
	lockMs := c.LockTimeout.Milliseconds()
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return "", fmt.Errorf("caminho do banco SQLite não informado")
		}
		return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d", c.Path, lockMs), nil
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   c.Host + ":" + c.Port,
			Path:   "/" + c.DBName,
		}
		q := url.Values{}
		q.Set("sslmode", c.SSLMode)
		if lockMs > 0 {
			q.Set("options", fmt.Sprintf("-c lock_timeout=%d", lockMs))
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return "", fmt.Errorf("driver de banco não suportado: %s", c.Driver)
	}
}

// Connect estabelece conexão com o banco configurado
func Connect(cfg Config) (*sql.DB, error) {
	log := logger.Global()

	if cfg.LockTimeout == 0 {
		cfg.LockTimeout = 10 * time.Second
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}
	if cfg.ConnMaxIdleTime == 0 {
		cfg.ConnMaxIdleTime = 2 * time.Minute
	}
	switch cfg.Driver {
	case DriverSQLite:
		// SQLite admite um único escritor
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	default:
		if cfg.MaxOpenConns == 0 {
			cfg.MaxOpenConns = 10
		}
		if cfg.MaxIdleConns == 0 {
			cfg.MaxIdleConns = 5
		}
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Str("host", cfg.Host).
		Str("dbname", cfg.DBName).
		Dur("lock_timeout", cfg.LockTimeout).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Conectando ao banco de dados")

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao testar conexão: %w", err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("Conexão com o banco estabelecida")
	return db, nil
}

// Close fecha a conexão com o banco
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config armazena as configurações da aplicação
type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	LogJSON     bool
	TokenAPI    string
	StaticDir   string
	BaseURL     string
	CORSOrigins []string

	DB        DBConfig
	SMTP      SMTPConfig
	Scheduler SchedulerConfig
}

// DBConfig descreve o armazenamento relacional
type DBConfig struct {
	Driver      string // "sqlite3" ou "postgres"
	Path        string // arquivo SQLite
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	LockTimeout time.Duration
}

// SMTPConfig contém as credenciais do relay de e-mail
type SMTPConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	Sender             string
	SenderName         string
	InsecureSkipVerify bool
	SendInterval       time.Duration
}

// SchedulerConfig define o horário fixo da verificação diária
type SchedulerConfig struct {
	Enabled  bool
	Hour     int
	Minute   int
	Location *time.Location
}

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		TokenAPI:  os.Getenv("TOKEN_API"),
		StaticDir: getEnv("STATIC_DIR", "./frontend/dist"),
		BaseURL:   strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite3"),
			Path:     getEnv("DB_PATH", "pendientes.db"),
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "pendientes"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			User:       os.Getenv("SMTP_USER"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			Sender:     os.Getenv("SMTP_SENDER"),
			SenderName: getEnv("SMTP_SENDER_NAME", "Sistema de Pendientes"),
		},
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	var err error
	if cfg.LogJSON, err = getBool("LOG_JSON", false); err != nil {
		return nil, err
	}
	if cfg.DB.LockTimeout, err = getDuration("DB_LOCK_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.SMTP.InsecureSkipVerify, err = getBool("SMTP_INSECURE_SKIP_VERIFY", false); err != nil {
		return nil, err
	}
	if cfg.SMTP.SendInterval, err = getDuration("MAIL_SEND_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.Scheduler.Enabled, err = getBool("SCHEDULER_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.Scheduler.Hour, err = getInt("SCHEDULE_HOUR", 8); err != nil {
		return nil, err
	}
	if cfg.Scheduler.Minute, err = getInt("SCHEDULE_MINUTE", 0); err != nil {
		return nil, err
	}

	cfg.Scheduler.Location = time.Local
	if tz := os.Getenv("SCHEDULE_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("SCHEDULE_TZ inválido: %w", err)
		}
		cfg.Scheduler.Location = loc
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.Driver != "sqlite3" && c.DB.Driver != "postgres" {
		return fmt.Errorf("DB_DRIVER deve ser sqlite3 ou postgres, recebido: %s", c.DB.Driver)
	}
	if c.Scheduler.Hour < 0 || c.Scheduler.Hour > 23 {
		return fmt.Errorf("SCHEDULE_HOUR fora do intervalo 0-23: %d", c.Scheduler.Hour)
	}
	if c.Scheduler.Minute < 0 || c.Scheduler.Minute > 59 {
		return fmt.Errorf("SCHEDULE_MINUTE fora do intervalo 0-59: %d", c.Scheduler.Minute)
	}
	if c.SMTP.Sender == "" {
		c.SMTP.Sender = c.SMTP.User
	}
	return nil
}

// MailConfigured indica se há credenciais para enviar e-mails
func (c *Config) MailConfigured() bool {
	return c.SMTP.User != "" && c.SMTP.Password != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %w", key, err)
	}
	return d, nil
}

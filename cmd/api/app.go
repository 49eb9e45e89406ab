package main

import (
	"database/sql"
	"fmt"

	"github.com/cleberrangel/pendientes-api/internal/config"
	"github.com/cleberrangel/pendientes-api/internal/database"
	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/mail"
	"github.com/cleberrangel/pendientes-api/internal/migration"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/cleberrangel/pendientes-api/internal/service"
)

// app agrupa as dependências compartilhadas pelos subcomandos
type app struct {
	cfg           *config.Config
	db            *sql.DB
	sender        mail.Sender
	notifications *service.NotificationService
}

// bootstrap carrega a configuração, abre o banco e aplica as migrations
func bootstrap(command string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configurações: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("command", command).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Str("db_driver", cfg.DB.Driver).
		Msg("Pendientes API iniciando")

	db, err := database.Connect(dbConfig(cfg))
	if err != nil {
		return nil, err
	}

	if err := migration.NewMigrator(db, cfg.DB.Driver).Run(); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("erro ao aplicar migrations: %w", err)
	}

	if !cfg.MailConfigured() {
		log.Warn().Msg("SMTP_USER/SMTP_PASSWORD não configurados: envios de e-mail vão falhar")
	}

	sender := mail.NewSMTPSender(cfg.SMTP)
	return &app{
		cfg:           cfg,
		db:            db,
		sender:        sender,
		notifications: service.NewNotificationService(repository.NewPendingRepository(db), sender, cfg.BaseURL),
	}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		logger.Global().Error().Err(err).Msg("Erro ao fechar banco de dados")
	}
}

func dbConfig(cfg *config.Config) database.Config {
	return database.Config{
		Driver:      cfg.DB.Driver,
		Path:        cfg.DB.Path,
		Host:        cfg.DB.Host,
		Port:        cfg.DB.Port,
		User:        cfg.DB.User,
		Password:    cfg.DB.Password,
		DBName:      cfg.DB.Name,
		SSLMode:     cfg.DB.SSLMode,
		LockTimeout: cfg.DB.LockTimeout,
	}
}

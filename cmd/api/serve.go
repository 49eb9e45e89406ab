package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/handler"
	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveWithScheduler bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia a API HTTP e serve o frontend",
	Long: `Inicia a API HTTP.

Com --scheduler (ou SCHEDULER_ENABLED=true) a verificação diária de prazos
roda no mesmo processo.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithScheduler, "scheduler", false, "executa também o agendador diário")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap("serve")
	if err != nil {
		return err
	}
	defer a.close()

	log := logger.Global()
	gin.SetMode(a.cfg.GinMode)

	router := handler.NewRouter(handler.Deps{
		DB:            a.db,
		Config:        a.cfg,
		Sender:        a.sender,
		Notifications: a.notifications,
		Version:       Version,
	})

	if serveWithScheduler || a.cfg.Scheduler.Enabled {
		sched, err := scheduler.New(a.notifications, a.cfg.Scheduler.Hour, a.cfg.Scheduler.Minute, a.cfg.Scheduler.Location)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", a.cfg.Port).Msg("Servidor iniciando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Sinal recebido, encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	log.Info().Msg("Servidor encerrado")
	return nil
}

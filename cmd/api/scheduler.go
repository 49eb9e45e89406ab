package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/scheduler"
	"github.com/spf13/cobra"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Executa a verificação de prazos todo dia no horário configurado",
	Long: `Bloqueia e dispara a verificação de prazos diariamente em
SCHEDULE_HOUR:SCHEDULE_MINUTE no fuso SCHEDULE_TZ. Sábados e domingos
não enviam e-mails.`,
	RunE: runScheduler,
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := bootstrap("scheduler")
	if err != nil {
		return err
	}
	defer a.close()

	sched, err := scheduler.New(a.notifications, a.cfg.Scheduler.Hour, a.cfg.Scheduler.Minute, a.cfg.Scheduler.Location)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	<-ctx.Done()

	logger.Global().Info().Msg("Sinal recebido, encerrando agendador")
	sched.Stop()
	return nil
}

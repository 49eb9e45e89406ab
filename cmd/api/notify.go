package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var notifyForce bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Executa agora uma verificação de prazos",
	Long: `Executa uma única passada de verificação de prazos e sai.

Por padrão segue as regras da execução agendada. Com --force ignora o
bloqueio de fim de semana e o registro de lembrete já enviado hoje.`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().BoolVar(&notifyForce, "force", false, "ignora fim de semana e lembretes já enviados hoje")
}

func runNotify(cmd *cobra.Command, args []string) error {
	a, err := bootstrap("notify")
	if err != nil {
		return err
	}
	defer a.close()

	ctx := logger.WithOperationID(context.Background(), uuid.New().String())
	now := time.Now().In(a.cfg.Scheduler.Location)

	run := a.notifications.RunScheduled
	if notifyForce {
		run = a.notifications.RunManual
	}

	result, err := run(ctx, now)
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "Fim de semana: nenhum e-mail enviado")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Avaliados: %d, vencendo: %d, enviados: %d, falhas: %d\n",
		result.Evaluated, result.Due, result.Sent, result.Failed)
	return nil
}

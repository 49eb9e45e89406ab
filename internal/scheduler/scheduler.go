package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Runner executa a passada diária de lembretes
type Runner interface {
	RunScheduled(ctx context.Context, now time.Time) (model.CheckResult, error)
}

// Scheduler dispara a verificação de prazos uma vez por dia num horário fixo.
// Execuções perdidas com o processo parado não são recuperadas.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	loc    *time.Location
	ctx    context.Context
	cancel context.CancelFunc
}

// New cria o agendador para hour:minute no fuso loc
func New(runner Runner, hour, minute int, loc *time.Location) (*Scheduler, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("horário inválido %02d:%02d", hour, minute)
	}
	if loc == nil {
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		runner: runner,
		spec:   fmt.Sprintf("%d %d * * *", minute, hour),
		loc:    loc,
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("erro ao agendar verificação: %w", err)
	}
	return s, nil
}

// Start inicia o agendador em segundo plano
func (s *Scheduler) Start() {
	logger.Global().Info().
		Str("cron", s.spec).
		Str("timezone", s.loc.String()).
		Time("next_run", s.Next()).
		Msg("Agendador de lembretes iniciado")
	s.cron.Start()
}

// Stop interrompe o agendador e aguarda a execução em andamento
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	logger.Global().Info().Msg("Agendador de lembretes parado")
}

// Next retorna o próximo disparo previsto
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now().In(s.loc))
}

func (s *Scheduler) tick() {
	ctx := logger.WithOperationID(s.ctx, uuid.New().String())
	log := logger.Get(ctx)

	log.Info().Msg("Executando verificação diária de prazos")
	result, err := s.runner.RunScheduled(ctx, time.Now().In(s.loc))
	if err != nil {
		log.Error().Err(err).Msg("Erro na verificação diária de prazos")
		return
	}
	log.Info().
		Bool("skipped", result.Skipped).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("Verificação diária concluída")
}

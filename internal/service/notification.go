package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/mail"
	"github.com/cleberrangel/pendientes-api/internal/metrics"
	"github.com/cleberrangel/pendientes-api/internal/model"
)

const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// PendingStore é o acesso a pendentes usado pelas notificações
type PendingStore interface {
	List(ctx context.Context) ([]model.PendingItem, error)
	Get(ctx context.Context, id int64) (model.PendingItem, error)
	MarkNotified(ctx context.Context, id int64, date string) error
}

// NotificationService avalia prazos e envia lembretes
type NotificationService struct {
	store   PendingStore
	sender  mail.Sender
	baseURL string
}

// NewNotificationService cria o serviço de notificações
func NewNotificationService(store PendingStore, sender mail.Sender, baseURL string) *NotificationService {
	return &NotificationService{
		store:   store,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RunScheduled é a passada diária: não envia nada em fins de semana e
// pula pendentes já lembrados no mesmo dia.
func (s *NotificationService) RunScheduled(ctx context.Context, now time.Time) (model.CheckResult, error) {
	log := logger.Get(ctx)

	if IsWeekend(now) {
		log.Info().Str("weekday", now.Weekday().String()).Msg("Fim de semana: nenhuma notificação enviada")
		metrics.NotificationRuns.WithLabelValues(TriggerScheduled, "skipped_weekend").Inc()
		return model.CheckResult{Skipped: true}, nil
	}
	return s.run(ctx, now, TriggerScheduled)
}

// RunManual executa a mesma avaliação sem o bloqueio de fim de semana
func (s *NotificationService) RunManual(ctx context.Context, now time.Time) (model.CheckResult, error) {
	return s.run(ctx, now, TriggerManual)
}

func (s *NotificationService) run(ctx context.Context, now time.Time, trigger string) (model.CheckResult, error) {
	log := logger.Get(ctx).With().Str("trigger", trigger).Logger()
	today := now.Format(model.DateLayout)

	items, err := s.store.List(ctx)
	if err != nil {
		metrics.NotificationRuns.WithLabelValues(trigger, "failed").Inc()
		return model.CheckResult{}, fmt.Errorf("erro ao carregar pendientes: %w", err)
	}

	log.Info().Str("today", today).Int("items", len(items)).Msg("Verificando prazos")

	var result model.CheckResult
	for _, item := range items {
		result.Evaluated++

		reminder, due := Evaluate(item, now)
		if !due {
			continue
		}
		if trigger == TriggerScheduled && item.UltimaNotificacion == today {
			log.Debug().Int64("pendiente_id", item.ID).Msg("Lembrete já enviado hoje")
			continue
		}
		result.Due++

		if !s.sender.Send(ctx, s.reminderMessage(reminder)) {
			result.Failed++
			metrics.RemindersFailed.WithLabelValues(trigger).Inc()
			continue
		}
		result.Sent++
		metrics.RemindersSent.WithLabelValues(trigger).Inc()

		if err := s.store.MarkNotified(ctx, item.ID, today); err != nil {
			log.Error().Err(err).Int64("pendiente_id", item.ID).Msg("Erro ao registrar lembrete enviado")
		}
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:   logger.AuditActionNotifyCheck,
		Resource: "pendientes",
		Success:  result.Failed == 0,
		Details: map[string]interface{}{
			"trigger":   trigger,
			"evaluated": result.Evaluated,
			"due":       result.Due,
			"sent":      result.Sent,
			"failed":    result.Failed,
		},
	})
	metrics.NotificationRuns.WithLabelValues(trigger, "completed").Inc()

	log.Info().
		Int("due", result.Due).
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Msg("Verificação de prazos concluída")

	return result, nil
}

// NotifyOne envia o lembrete manual de um pendente, ignorando dia e janela
func (s *NotificationService) NotifyOne(ctx context.Context, id int64) (model.PendingItem, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return item, err
	}
	if strings.TrimSpace(item.EmailNotificacion) == "" {
		return item, model.ErrNoEmail
	}

	ok := s.sender.Send(ctx, s.manualMessage(item))
	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionNotifySend,
		Resource:   "pendiente",
		ResourceID: fmt.Sprint(id),
		Success:    ok,
		Details:    map[string]interface{}{"to": item.EmailNotificacion},
	})
	if !ok {
		metrics.RemindersFailed.WithLabelValues(TriggerManual).Inc()
		return item, model.ErrMailFailed
	}
	metrics.RemindersSent.WithLabelValues(TriggerManual).Inc()
	return item, nil
}

func (s *NotificationService) reminderMessage(r Reminder) mail.Message {
	item := r.Item
	var b strings.Builder
	fmt.Fprintf(&b, "Hola,\n\n")
	fmt.Fprintf(&b, "Este es un recordatorio automático de tu Sistema de Pendientes.\n\n")
	fmt.Fprintf(&b, "--------------------------------------------------\n")
	fmt.Fprintf(&b, "ACTIVIDAD: %s\n", item.Actividad)
	fmt.Fprintf(&b, "--------------------------------------------------\n\n")
	fmt.Fprintf(&b, "📅 Fecha Límite: %s (%s)\n", item.FechaLimite, r.Label())
	fmt.Fprintf(&b, "🏢 Empresa:      %s\n", item.Empresa)
	fmt.Fprintf(&b, "📝 Descripción:  %s\n\n", item.Descripcion)
	fmt.Fprintf(&b, "⚠️ Estado Actual: %s\n\n", item.Estado)
	if s.baseURL != "" {
		fmt.Fprintf(&b, "Marcar todas las tareas como completadas:\n%s/api/pendientes/%d/complete-all-tasks\n\n", s.baseURL, item.ID)
	}
	fmt.Fprintf(&b, "Por favor, gestiona este pendiente lo antes posible.\n\n")
	fmt.Fprintf(&b, "Saludos,\nTu Asistente Virtual\n")

	return mail.Message{
		To:      item.EmailNotificacion,
		CC:      item.CCList(),
		Subject: fmt.Sprintf("🔔 Recordatorio: '%s' vence pronto", item.Actividad),
		Body:    b.String(),
	}
}

func (s *NotificationService) manualMessage(item model.PendingItem) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola,\n\n")
	fmt.Fprintf(&b, "Registro de pendiente:\n")
	fmt.Fprintf(&b, "--------------------------------------------------\n")
	fmt.Fprintf(&b, "ACTIVIDAD: %s\n", item.Actividad)
	fmt.Fprintf(&b, "--------------------------------------------------\n")
	fmt.Fprintf(&b, "📅 Fecha Límite: %s\n", item.FechaLimite)
	fmt.Fprintf(&b, "🏢 Empresa:      %s\n", item.Empresa)
	fmt.Fprintf(&b, "📝 Descripción:  %s\n", item.Descripcion)
	fmt.Fprintf(&b, "⚠️ Estado Actual: %s\n\n", item.Estado)
	fmt.Fprintf(&b, "Saludos,\nTu Asistente Virtual\n")

	return mail.Message{
		To:      item.EmailNotificacion,
		CC:      item.CCList(),
		Subject: fmt.Sprintf("🔔 Recordatorio: '%s'", item.Actividad),
		Body:    b.String(),
	}
}

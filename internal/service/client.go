package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/mail"
	"github.com/cleberrangel/pendientes-api/internal/metrics"
	"github.com/cleberrangel/pendientes-api/internal/model"
)

// ClientStore é o acesso a clientes usado pelos fluxos compostos
type ClientStore interface {
	Get(ctx context.Context, id int64) (model.Client, error)
	FindByEmpresa(ctx context.Context, empresa string) (model.Client, error)
	SetChecked(ctx context.Context, id int64, checked bool) error
	IDs(ctx context.Context) ([]int64, error)
}

// TaskStore é o acesso às tarefas de clientes
type TaskStore interface {
	ListOpenByClient(ctx context.Context, clientID int64) ([]model.ClientTask, error)
	DeleteByClient(ctx context.Context, clientID int64) (int64, error)
	CreateForClients(ctx context.Context, clientIDs []int64, description string) (int, error)
}

// PendingWriter grava pendentes gerados a partir de tarefas
type PendingWriter interface {
	Get(ctx context.Context, id int64) (model.PendingItem, error)
	CreateMany(ctx context.Context, items []model.PendingItem) ([]int64, error)
	SetEstado(ctx context.Context, id int64, estado string) error
}

// SendResult resume o envio do resumo de tarefas a vários destinatários
type SendResult struct {
	Sent   []string
	Failed []string
}

// Message retorna o texto exibido ao usuário
func (r SendResult) Message() string {
	total := len(r.Sent) + len(r.Failed)
	switch {
	case len(r.Failed) == 0:
		return fmt.Sprintf("Correos enviados exitosamente a %d destinatario(s)", len(r.Sent))
	case len(r.Sent) > 0:
		return fmt.Sprintf("Enviado a %d de %d destinatarios. Fallaron: %s", len(r.Sent), total, strings.Join(r.Failed, ", "))
	default:
		return "Error al enviar correos a todos los destinatarios"
	}
}

// ClientService implementa as operações que envolvem mais de uma tabela
type ClientService struct {
	clients ClientStore
	tasks   TaskStore
	pending PendingWriter
	sender  mail.Sender
	now     func() time.Time
}

// NewClientService cria o serviço de clientes
func NewClientService(clients ClientStore, tasks TaskStore, pending PendingWriter, sender mail.Sender) *ClientService {
	return &ClientService{
		clients: clients,
		tasks:   tasks,
		pending: pending,
		sender:  sender,
		now:     time.Now,
	}
}

// CreatePendingFromTasks cria um pendente por tarefa aberta do cliente
func (s *ClientService) CreatePendingFromTasks(ctx context.Context, clientID int64, req model.CreatePendingFromTasksRequest) (int, error) {
	if err := req.Normalize(); err != nil {
		return 0, err
	}

	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return 0, err
	}

	open, err := s.tasks.ListOpenByClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	if len(open) == 0 {
		return 0, model.ErrNoPendingTasks
	}

	today := s.now().Format(model.DateLayout)
	items := make([]model.PendingItem, 0, len(open))
	for _, task := range open {
		items = append(items, model.PendingItem{
			Fecha:                 today,
			Actividad:             task.Description,
			Descripcion:           "Tarea del cliente: " + client.Empresa,
			Empresa:               client.Empresa,
			Estado:                model.EstadoPendiente,
			FechaLimite:           req.FechaLimite,
			EmailNotificacion:     req.Email,
			DiasAntesNotificacion: req.DiasAntesNotificacion,
		})
	}

	ids, err := s.pending.CreateMany(ctx, items)
	if err != nil {
		return 0, err
	}

	metrics.PendingItemsFromTasks.Add(float64(len(ids)))
	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionTaskConvert,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(clientID),
		Success:    true,
		Details:    map[string]interface{}{"created": len(ids), "email": req.Email},
	})
	return len(ids), nil
}

// SendOpenTasks envia o resumo das tarefas abertas do cliente a cada destinatário.
// Bloqueado em fins de semana.
func (s *ClientService) SendOpenTasks(ctx context.Context, clientID int64, req model.SendTasksRequest) (SendResult, error) {
	var result SendResult

	if IsWeekend(s.now()) {
		return result, model.ErrWeekend
	}
	if err := req.Normalize(); err != nil {
		return result, err
	}

	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return result, err
	}
	open, err := s.tasks.ListOpenByClient(ctx, clientID)
	if err != nil {
		return result, err
	}
	if len(open) == 0 {
		return result, model.ErrNoPendingTasks
	}

	msg := openTasksMessage(client, open)
	for _, to := range req.Emails {
		msg.To = to
		if s.sender.Send(ctx, msg) {
			result.Sent = append(result.Sent, to)
		} else {
			result.Failed = append(result.Failed, to)
		}
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionNotifySend,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(clientID),
		Success:    len(result.Sent) > 0,
		Details:    map[string]interface{}{"sent": len(result.Sent), "failed": len(result.Failed)},
	})

	if len(result.Sent) == 0 {
		return result, model.ErrMailFailed
	}
	return result, nil
}

func openTasksMessage(client model.Client, tasks []model.ClientTask) mail.Message {
	var list strings.Builder
	for i, t := range tasks {
		fmt.Fprintf(&list, "%d. %s\n   📅 Creada: %s\n\n", i+1, t.Description, formatCreatedAt(t.CreatedAt))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hola,\n\n")
	fmt.Fprintf(&b, "Este es un resumen de las tareas pendientes para el cliente:\n\n")
	fmt.Fprintf(&b, "--------------------------------------------------\n")
	fmt.Fprintf(&b, "CLIENTE: %s\n", client.Empresa)
	fmt.Fprintf(&b, "--------------------------------------------------\n\n")
	fmt.Fprintf(&b, "TAREAS PENDIENTES (%d):\n\n", len(tasks))
	b.WriteString(list.String())
	fmt.Fprintf(&b, "Por favor, gestiona estas tareas lo antes posible.\n\n")
	fmt.Fprintf(&b, "Saludos,\nSistema de Gestión de Pendientes\n")

	return mail.Message{
		Subject: "📋 Tareas Pendientes - " + client.Empresa,
		Body:    b.String(),
	}
}

func formatCreatedAt(raw string) string {
	if raw == "" {
		return "Fecha no disponible"
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return raw
}

// CompleteAllTasks finaliza o pendente, marca o cliente de mesma empresa
// como concluído e remove as tarefas desse cliente.
func (s *ClientService) CompleteAllTasks(ctx context.Context, pendingID int64) (model.PendingItem, error) {
	log := logger.Get(ctx)

	item, err := s.pending.Get(ctx, pendingID)
	if err != nil {
		return item, err
	}
	if err := s.pending.SetEstado(ctx, pendingID, model.EstadoFinalizado); err != nil {
		return item, err
	}
	item.Estado = model.EstadoFinalizado

	details := map[string]interface{}{"empresa": item.Empresa}
	client, err := s.clients.FindByEmpresa(ctx, item.Empresa)
	switch {
	case err == nil:
		if err := s.clients.SetChecked(ctx, client.ID, true); err != nil {
			return item, err
		}
		removed, err := s.tasks.DeleteByClient(ctx, client.ID)
		if err != nil {
			return item, err
		}
		details["client_id"] = client.ID
		details["tasks_removed"] = removed
	case errors.Is(err, model.ErrNotFound):
		log.Info().Str("empresa", item.Empresa).Msg("Nenhum cliente com a empresa do pendente")
	default:
		return item, err
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionPendingComplete,
		Resource:   "pendiente",
		ResourceID: fmt.Sprint(pendingID),
		Success:    true,
		Details:    details,
	})
	return item, nil
}

// AddGlobalTask adiciona a tarefa a todos os clientes, exceto os excluídos
func (s *ClientService) AddGlobalTask(ctx context.Context, req model.GlobalTaskRequest) (int, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return 0, model.ErrEmptyDescription
	}

	ids, err := s.clients.IDs(ctx)
	if err != nil {
		return 0, err
	}

	excluded := make(map[int64]bool, len(req.ExcludedClientIDs))
	for _, id := range req.ExcludedClientIDs {
		excluded[id] = true
	}
	included := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !excluded[id] {
			included = append(included, id)
		}
	}

	n, err := s.tasks.CreateForClients(ctx, included, description)
	if err != nil {
		return 0, err
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:   logger.AuditActionTaskGlobal,
		Resource: "client_tasks",
		Success:  true,
		Details:  map[string]interface{}{"clients": n, "excluded": len(req.ExcludedClientIDs)},
	})
	return n, nil
}

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskListSeparator separa as descrições em ClientSummary.TaskList
const TaskListSeparator = "|||"

// Client representa um registro da tabela clientes
type Client struct {
	ID            int64  `json:"id"`
	Empresa       string `json:"empresa"`
	Observaciones string `json:"observaciones"`
	CheckEstado   bool   `json:"check_estado"`
	Procedimiento string `json:"procedimiento"`
	Estado        string `json:"estado"`
}

// ClientSummary é o cliente com o agregado de suas tarefas (não persistido)
type ClientSummary struct {
	Client
	TaskList       string   `json:"task_list"`
	Tasks          []string `json:"tasks"`
	TotalTasks     int      `json:"total_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
}

// ClientTask representa um item do checklist de um cliente
type ClientTask struct {
	ID          int64  `json:"id"`
	ClientID    int64  `json:"client_id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

// Flag aceita booleanos enviados como true/false, 0/1 ou "0"/"1"
type Flag bool

// UnmarshalJSON implementa json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	switch strings.ToLower(raw) {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("valor booleano inválido: %s", raw)
	}
	return nil
}

// MarshalJSON implementa json.Marshaler
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// ClientRequest é o payload de criação e edição de clientes
type ClientRequest struct {
	Empresa       string `json:"empresa" binding:"required"`
	Observaciones string `json:"observaciones"`
	CheckEstado   Flag   `json:"check_estado"`
	Procedimiento string `json:"procedimiento"`
	Estado        string `json:"estado"`
}

// Normalize aplica os valores padrão do payload
func (r *ClientRequest) Normalize() {
	r.Empresa = strings.TrimSpace(r.Empresa)
	if strings.TrimSpace(r.Estado) == "" {
		r.Estado = EstadoPendiente
	}
}

// ToClient converte o payload em cliente
func (r ClientRequest) ToClient() Client {
	return Client{
		Empresa:       r.Empresa,
		Observaciones: r.Observaciones,
		CheckEstado:   bool(r.CheckEstado),
		Procedimiento: r.Procedimiento,
		Estado:        r.Estado,
	}
}

// BulkClientRequest importa vários clientes de uma vez
type BulkClientRequest struct {
	Clientes []ClientRequest `json:"clientes" binding:"required,min=1,dive"`
}

// TaskRequest adiciona uma tarefa a um cliente
type TaskRequest struct {
	Description string `json:"description" binding:"required"`
}

// BulkTaskRequest adiciona várias tarefas a um cliente
type BulkTaskRequest struct {
	Tasks []string `json:"tasks"`
}

// Normalize descarta descrições vazias
func (r *BulkTaskRequest) Normalize() {
	kept := r.Tasks[:0]
	for _, t := range r.Tasks {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	r.Tasks = kept
}

// TaskStatusRequest altera o estado de conclusão de uma tarefa
type TaskStatusRequest struct {
	Completed Flag `json:"completed"`
}

// GlobalTaskRequest adiciona uma tarefa a todos os clientes, exceto os excluídos
type GlobalTaskRequest struct {
	Description       string  `json:"description" binding:"required"`
	ExcludedClientIDs []int64 `json:"excluded_client_ids"`
}

// CreatePendingFromTasksRequest converte as tarefas abertas de um cliente em pendentes
type CreatePendingFromTasksRequest struct {
	Email                 string `json:"email"`
	DiasAntesNotificacion *int   `json:"dias_antes_notificacion" binding:"omitempty,min=0"`
	FechaLimite           string `json:"fecha_limite"`
}

// Normalize aplica os padrões e valida o payload
func (r *CreatePendingFromTasksRequest) Normalize() error {
	r.Email = strings.TrimSpace(r.Email)
	r.FechaLimite = strings.TrimSpace(r.FechaLimite)
	if r.Email == "" {
		return ErrNoEmail
	}
	if r.DiasAntesNotificacion == nil {
		d := DefaultDiasAntes
		r.DiasAntesNotificacion = &d
	}
	if r.FechaLimite != "" {
		if _, err := time.Parse(DateLayout, r.FechaLimite); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// SendTasksRequest envia o resumo das tarefas abertas por e-mail
type SendTasksRequest struct {
	Emails []string `json:"emails"`
}

// Normalize descarta destinatários vazios
func (r *SendTasksRequest) Normalize() error {
	var kept []string
	for _, e := range r.Emails {
		kept = append(kept, SplitEmails(e)...)
	}
	r.Emails = kept
	if len(r.Emails) == 0 {
		return ErrNoRecipients
	}
	return nil
}

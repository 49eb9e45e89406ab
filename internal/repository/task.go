package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cleberrangel/pendientes-api/internal/model"
)

// TaskRepository gerencia a tabela client_tasks
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository cria um novo repositório de tarefas de clientes
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.ClientTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tarefas: %w", err)
	}
	defer rows.Close()

	tasks := []model.ClientTask{}
	for rows.Next() {
		var t model.ClientTask
		var completed sql.NullInt64
		var createdAt sql.NullString
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Description, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("erro ao ler tarefa: %w", err)
		}
		t.Completed = completed.Int64 != 0
		t.CreatedAt = createdAt.String
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListByClient retorna as tarefas do cliente, mais recentes primeiro
func (r *TaskRepository) ListByClient(ctx context.Context, clientID int64) ([]model.ClientTask, error) {
	return r.query(ctx, `
		SELECT id, client_id, description, completed, created_at
		FROM client_tasks
		WHERE client_id = $1
		ORDER BY id DESC
	`, clientID)
}

// ListOpenByClient retorna as tarefas não concluídas do cliente
func (r *TaskRepository) ListOpenByClient(ctx context.Context, clientID int64) ([]model.ClientTask, error) {
	return r.query(ctx, `
		SELECT id, client_id, description, completed, created_at
		FROM client_tasks
		WHERE client_id = $1 AND completed = 0
		ORDER BY created_at DESC, id DESC
	`, clientID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertTask(ctx context.Context, e execer, clientID int64, description, createdAt string) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO client_tasks (client_id, description, completed, created_at) VALUES ($1, $2, 0, $3)`,
		clientID, description, createdAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir tarefa do cliente %d: %w", clientID, err)
	}
	return nil
}

// Create adiciona uma tarefa a um cliente
func (r *TaskRepository) Create(ctx context.Context, clientID int64, description string) error {
	return insertTask(ctx, r.db, clientID, description, nowTimestamp())
}

// CreateMany adiciona várias tarefas a um cliente numa única transação
func (r *TaskRepository) CreateMany(ctx context.Context, clientID int64, descriptions []string) (int, error) {
	if len(descriptions) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	createdAt := nowTimestamp()
	for _, d := range descriptions {
		if err := insertTask(ctx, tx, clientID, d, createdAt); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("erro ao confirmar tarefas: %w", err)
	}
	return len(descriptions), nil
}

// CreateForClients adiciona a mesma tarefa a cada cliente informado
func (r *TaskRepository) CreateForClients(ctx context.Context, clientIDs []int64, description string) (int, error) {
	if len(clientIDs) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	createdAt := nowTimestamp()
	for _, id := range clientIDs {
		if err := insertTask(ctx, tx, id, description, createdAt); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("erro ao confirmar tarefa global: %w", err)
	}
	return len(clientIDs), nil
}

// SetCompleted altera o estado de conclusão de uma tarefa
func (r *TaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE client_tasks SET completed = $1 WHERE id = $2`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar tarefa %d: %w", id, err)
	}
	return requireAffected(res, "tarefa", id)
}

// Delete remove uma tarefa
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir tarefa %d: %w", id, err)
	}
	return requireAffected(res, "tarefa", id)
}

// DeleteByClient remove todas as tarefas de um cliente
func (r *TaskRepository) DeleteByClient(ctx context.Context, clientID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_tasks WHERE client_id = $1`, clientID)
	if err != nil {
		return 0, fmt.Errorf("erro ao excluir tarefas do cliente %d: %w", clientID, err)
	}
	return res.RowsAffected()
}

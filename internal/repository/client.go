package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cleberrangel/pendientes-api/internal/model"
)

const clientColumns = `id, empresa, observaciones, check_estado, procedimiento, estado`

// ClientRepository gerencia a tabela clientes
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository cria um novo repositório de clientes
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func scanClient(row rowScanner) (model.Client, error) {
	var c model.Client
	var obs, proc, estado sql.NullString
	var check sql.NullInt64
	if err := row.Scan(&c.ID, &c.Empresa, &obs, &check, &proc, &estado); err != nil {
		return c, err
	}
	c.Observaciones = obs.String
	c.CheckEstado = check.Int64 != 0
	c.Procedimiento = proc.String
	c.Estado = estado.String
	return c, nil
}

// ListSummaries retorna os clientes com o agregado de suas tarefas, ordenados por empresa
func (r *ClientRepository) ListSummaries(ctx context.Context) ([]model.ClientSummary, error) {
	query := `
		SELECT c.id, c.empresa, c.observaciones, c.check_estado, c.procedimiento, c.estado,
			ct.description, ct.completed
		FROM clientes c
		LEFT JOIN client_tasks ct ON ct.client_id = c.id
		ORDER BY c.empresa ASC, c.id ASC, ct.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	summaries := []model.ClientSummary{}
	var current *model.ClientSummary
	for rows.Next() {
		var c model.Client
		var obs, proc, estado, desc sql.NullString
		var check, completed sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Empresa, &obs, &check, &proc, &estado, &desc, &completed); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}

		if current == nil || current.ID != c.ID {
			c.Observaciones = obs.String
			c.CheckEstado = check.Int64 != 0
			c.Procedimiento = proc.String
			c.Estado = estado.String
			summaries = append(summaries, model.ClientSummary{Client: c, Tasks: []string{}})
			current = &summaries[len(summaries)-1]
		}

		if !desc.Valid {
			continue
		}
		current.Tasks = append(current.Tasks, desc.String)
		current.TotalTasks++
		if completed.Int64 != 0 {
			current.CompletedTasks++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		summaries[i].TaskList = strings.Join(summaries[i].Tasks, model.TaskListSeparator)
	}
	return summaries, nil
}

// List retorna os clientes sem agregados
func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clientes ORDER BY empresa ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Get retorna um cliente pelo ID
func (r *ClientRepository) Get(ctx context.Context, id int64) (model.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("cliente %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return c, fmt.Errorf("erro ao buscar cliente %d: %w", id, err)
	}
	return c, nil
}

// FindByEmpresa retorna o primeiro cliente com o nome de empresa informado
func (r *ClientRepository) FindByEmpresa(ctx context.Context, empresa string) (model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE empresa = $1 ORDER BY id ASC LIMIT 1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, empresa))
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("cliente %q: %w", empresa, model.ErrNotFound)
	}
	if err != nil {
		return c, fmt.Errorf("erro ao buscar cliente %q: %w", empresa, err)
	}
	return c, nil
}

// IDs retorna o ID de todos os clientes
func (r *ClientRepository) IDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM clientes ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ids de clientes: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create insere um cliente e retorna o ID gerado
func (r *ClientRepository) Create(ctx context.Context, c model.Client) (int64, error) {
	return insertClient(ctx, r.db, c)
}

// CreateMany insere vários clientes numa única transação
func (r *ClientRepository) CreateMany(ctx context.Context, clients []model.Client) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	for _, c := range clients {
		if _, err := insertClient(ctx, tx, c); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("erro ao confirmar clientes: %w", err)
	}
	return len(clients), nil
}

func insertClient(ctx context.Context, q queryRower, c model.Client) (int64, error) {
	query := `
		INSERT INTO clientes (empresa, observaciones, check_estado, procedimiento, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query, c.Empresa, c.Observaciones, boolToInt(c.CheckEstado), c.Procedimiento, c.Estado).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("erro ao inserir cliente: %w", err)
	}
	return id, nil
}

// Update substitui os campos editáveis de um cliente
func (r *ClientRepository) Update(ctx context.Context, id int64, c model.Client) error {
	query := `
		UPDATE clientes
		SET empresa = $1, observaciones = $2, check_estado = $3, procedimiento = $4, estado = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query, c.Empresa, c.Observaciones, boolToInt(c.CheckEstado), c.Procedimiento, c.Estado, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente %d: %w", id, err)
	}
	return requireAffected(res, "cliente", id)
}

// SetChecked marca ou desmarca o cliente como concluído
func (r *ClientRepository) SetChecked(ctx context.Context, id int64, checked bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE clientes SET check_estado = $1 WHERE id = $2`, boolToInt(checked), id)
	if err != nil {
		return fmt.Errorf("erro ao marcar cliente %d: %w", id, err)
	}
	return requireAffected(res, "cliente", id)
}

// Delete remove um cliente. As tarefas associadas são mantidas.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir cliente %d: %w", id, err)
	}
	return requireAffected(res, "cliente", id)
}

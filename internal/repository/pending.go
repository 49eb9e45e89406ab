package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/model"
)

const pendingColumns = `id, fecha, actividad, descripcion, empresa, cc_emails, estado,
	observaciones, fecha_limite, email_notificacion, dias_antes_notificacion, ultima_notificacion`

// PendingRepository gerencia a tabela pendientes
type PendingRepository struct {
	db *sql.DB
}

// NewPendingRepository cria um novo repositório de pendentes
func NewPendingRepository(db *sql.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPending(row rowScanner) (model.PendingItem, error) {
	var item model.PendingItem
	var descripcion, empresa, cc, estado, obs, limite, email, ultima sql.NullString
	var dias sql.NullInt64
	err := row.Scan(&item.ID, &item.Fecha, &item.Actividad, &descripcion, &empresa, &cc, &estado,
		&obs, &limite, &email, &dias, &ultima)
	if err != nil {
		return item, err
	}
	item.Descripcion = descripcion.String
	item.Empresa = empresa.String
	item.CCEmails = cc.String
	item.Estado = estado.String
	item.Observaciones = obs.String
	item.FechaLimite = limite.String
	item.EmailNotificacion = email.String
	item.UltimaNotificacion = ultima.String
	if dias.Valid {
		d := int(dias.Int64)
		item.DiasAntesNotificacion = &d
	}
	return item, nil
}

// List retorna todos os pendentes ordenados pela data limite
func (r *PendingRepository) List(ctx context.Context) ([]model.PendingItem, error) {
	query := `SELECT ` + pendingColumns + ` FROM pendientes ORDER BY fecha_limite ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pendientes: %w", err)
	}
	defer rows.Close()

	items := []model.PendingItem{}
	for rows.Next() {
		item, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pendiente: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get retorna um pendente pelo ID
func (r *PendingRepository) Get(ctx context.Context, id int64) (model.PendingItem, error) {
	query := `SELECT ` + pendingColumns + ` FROM pendientes WHERE id = $1`

	item, err := scanPending(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return item, fmt.Errorf("pendiente %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return item, fmt.Errorf("erro ao buscar pendiente %d: %w", id, err)
	}
	return item, nil
}

// Create insere um pendente e retorna o ID gerado
func (r *PendingRepository) Create(ctx context.Context, item model.PendingItem) (int64, error) {
	return insertPending(ctx, r.db, item)
}

// CreateMany insere vários pendentes numa única transação
func (r *PendingRepository) CreateMany(ctx context.Context, items []model.PendingItem) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := insertPending(ctx, tx, item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("erro ao confirmar pendientes: %w", err)
	}
	return ids, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func insertPending(ctx context.Context, q queryRower, item model.PendingItem) (int64, error) {
	query := `
		INSERT INTO pendientes (fecha, actividad, descripcion, empresa, cc_emails, estado,
			observaciones, fecha_limite, email_notificacion, dias_antes_notificacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query,
		item.Fecha, item.Actividad, item.Descripcion, item.Empresa, item.CCEmails, item.Estado,
		item.Observaciones, item.FechaLimite, item.EmailNotificacion, item.Threshold(),
	).Scan(&id)
	if err != nil {
		logger.Get(ctx).Error().Err(err).Str("actividad", item.Actividad).Msg("Erro ao inserir pendiente")
		return 0, fmt.Errorf("erro ao inserir pendiente: %w", err)
	}
	return id, nil
}

// Update substitui todos os campos editáveis de um pendente
func (r *PendingRepository) Update(ctx context.Context, id int64, item model.PendingItem) error {
	query := `
		UPDATE pendientes
		SET fecha = $1, actividad = $2, descripcion = $3, empresa = $4, cc_emails = $5, estado = $6,
			observaciones = $7, fecha_limite = $8, email_notificacion = $9, dias_antes_notificacion = $10
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		item.Fecha, item.Actividad, item.Descripcion, item.Empresa, item.CCEmails, item.Estado,
		item.Observaciones, item.FechaLimite, item.EmailNotificacion, item.Threshold(), id,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pendiente %d: %w", id, err)
	}
	return requireAffected(res, "pendiente", id)
}

// SetEstado altera apenas o estado de um pendente
func (r *PendingRepository) SetEstado(ctx context.Context, id int64, estado string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pendientes SET estado = $1 WHERE id = $2`, estado, id)
	if err != nil {
		return fmt.Errorf("erro ao alterar estado do pendiente %d: %w", id, err)
	}
	return requireAffected(res, "pendiente", id)
}

// MarkNotified registra a data do último lembrete automático
func (r *PendingRepository) MarkNotified(ctx context.Context, id int64, date string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pendientes SET ultima_notificacion = $1 WHERE id = $2`, date, id)
	if err != nil {
		return fmt.Errorf("erro ao registrar notificação do pendiente %d: %w", id, err)
	}
	return requireAffected(res, "pendiente", id)
}

// Delete remove um pendente
func (r *PendingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pendientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir pendiente %d: %w", id, err)
	}
	return requireAffected(res, "pendiente", id)
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/model"
)

// timestampLayout é o formato de created_at das tarefas
const timestampLayout = "2006-01-02 15:04:05"

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowTimestamp() string {
	return time.Now().Format(timestampLayout)
}

// requireAffected converte "nenhuma linha afetada" em model.ErrNotFound
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, model.ErrNotFound)
	}
	return nil
}

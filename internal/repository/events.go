package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/lib/pq"
)

// StatusEventRepository consulta o histórico de transições de status
type StatusEventRepository struct {
	db *sql.DB
}

// NewStatusEventRepository cria um novo repositório de transições
func NewStatusEventRepository(db *sql.DB) *StatusEventRepository {
	return &StatusEventRepository{db: db}
}

// QueryChanges retorna todas as transições de status no escopo dentro de
// [from, to), ascendentes por tempo. A ordem é garantida pelo banco; o
// replay do tracker depende dela.
func (r *StatusEventRepository) QueryChanges(scope []string, from, to time.Time) ([]model.StatusChange, error) {
	log := logger.Global()

	query := `
		SELECT item_id, changed_at, item_type, old_status, new_status, COALESCE(effort, 0)
		FROM status_changes
		WHERE milestone = ANY($1)
		  AND changed_at >= $2
		  AND changed_at < $3
		ORDER BY changed_at, id
	`

	rows, err := r.db.Query(query, pq.Array(scope), from, to)
	if err != nil {
		log.Error().Err(err).Strs("scope", scope).Msg("Erro ao consultar transições de status")
		return nil, fmt.Errorf("%w: transições de status: %v", model.ErrDataSource, err)
	}
	defer rows.Close()

	var changes []model.StatusChange
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ItemID, &c.At, &c.ItemType, &c.OldStatus, &c.NewStatus, &c.Effort); err != nil {
			return nil, fmt.Errorf("erro ao ler transição: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar transições: %w", err)
	}

	return changes, nil
}

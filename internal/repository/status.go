package repository

import (
	"database/sql"
	"fmt"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
)

// StatusRepository expõe o registro de status "fechado" por tipo de item
type StatusRepository struct {
	db *sql.DB
}

// NewStatusRepository cria um novo repositório de status
func NewStatusRepository(db *sql.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// ClosedStatuses retorna o conjunto de nomes de status considerados
// fechados para um tipo de item
func (r *StatusRepository) ClosedStatuses(itemType string) (map[string]struct{}, error) {
	log := logger.Global()

	rows, err := r.db.Query(`SELECT status FROM closed_statuses WHERE item_type = $1`, itemType)
	if err != nil {
		log.Error().Err(err).Str("item_type", itemType).Msg("Erro ao consultar status fechados")
		return nil, fmt.Errorf("%w: status fechados: %v", model.ErrDataSource, err)
	}
	defer rows.Close()

	closed := make(map[string]struct{})
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("erro ao ler status fechado: %w", err)
		}
		closed[status] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar status fechados: %w", err)
	}

	return closed, nil
}

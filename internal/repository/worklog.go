package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/lib/pq"
)

// WorkLogRepository consulta horas registradas contra itens do escopo
type WorkLogRepository struct {
	db *sql.DB
}

// NewWorkLogRepository cria um novo repositório de horas registradas
func NewWorkLogRepository(db *sql.DB) *WorkLogRepository {
	return &WorkLogRepository{db: db}
}

// SecondsLogged soma os segundos trabalhados no escopo em uma data
func (r *WorkLogRepository) SecondsLogged(scope []string, date time.Time) (int64, error) {
	log := logger.Global()

	query := `
		SELECT COALESCE(SUM(seconds_worked), 0)
		FROM work_logs
		WHERE milestone = ANY($1)
		  AND log_date = $2
	`

	var seconds int64
	if err := r.db.QueryRow(query, pq.Array(scope), date).Scan(&seconds); err != nil {
		log.Error().Err(err).
			Strs("scope", scope).
			Time("date", date).
			Msg("Erro ao consultar horas registradas")
		return 0, fmt.Errorf("%w: horas registradas: %v", model.ErrDataSource, err)
	}

	return seconds, nil
}

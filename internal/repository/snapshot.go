package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/lib/pq"
)

// SnapshotRepository consulta os snapshots diários de itens de trabalho.
// Os snapshots são fatos históricos gravados por um recorder externo;
// este repositório é somente leitura.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository cria um novo repositório de snapshots
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// QueryRemaining agrega, por dia, o esforço restante na unidade pedida
// sobre todo o escopo (lista de milestones). Itens fechados são sempre
// excluídos do agregado. Retorna uma curva ascendente por data contendo
// apenas os dias com snapshots registrados.
func (r *SnapshotRepository) QueryRemaining(scope []string, unit model.Unit, from, to time.Time) (model.Curve, error) {
	log := logger.Global()

	var aggregate string
	switch unit {
	case model.UnitItems:
		aggregate = "COUNT(DISTINCT item_id)"
	case model.UnitHours:
		aggregate = "COALESCE(SUM(remaining_hours), 0)"
	case model.UnitPoints:
		aggregate = "COALESCE(SUM(effort), 0)"
	default:
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidUnit, unit)
	}

	// Escopo de tamanho variável via ANY($1), nunca IN montado por string
	query := fmt.Sprintf(`
		SELECT snapshot_date, %s
		FROM item_snapshots
		WHERE milestone = ANY($1)
		  AND NOT closed
		  AND snapshot_date BETWEEN $2 AND $3
		GROUP BY snapshot_date
		ORDER BY snapshot_date
	`, aggregate)

	rows, err := r.db.Query(query, pq.Array(scope), from, to)
	if err != nil {
		log.Error().Err(err).
			Strs("scope", scope).
			Str("unit", unit.String()).
			Msg("Erro ao consultar snapshots")
		return nil, fmt.Errorf("%w: snapshots: %v", model.ErrDataSource, err)
	}
	defer rows.Close()

	var curve model.Curve
	for rows.Next() {
		var p model.CurvePoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("erro ao ler snapshot agregado: %w", err)
		}
		curve = append(curve, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar snapshots: %w", err)
	}

	return curve, nil
}

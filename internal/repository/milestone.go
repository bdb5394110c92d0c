package repository

import (
	"database/sql"
	"fmt"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
)

// MilestoneRepository gerencia consultas de milestones no banco
type MilestoneRepository struct {
	db *sql.DB
}

// NewMilestoneRepository cria um novo repositório de milestones
func NewMilestoneRepository(db *sql.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// Get busca um milestone pelo nome, incluindo os filhos diretos.
// Retorna model.ErrMilestoneNotFound quando não existe.
func (r *MilestoneRepository) Get(name string) (*model.Milestone, error) {
	log := logger.Global()

	query := `
		SELECT name, start_date, due_date
		FROM milestones
		WHERE name = $1
	`

	var m model.Milestone
	var start, due sql.NullTime
	err := r.db.QueryRow(query, name).Scan(&m.Name, &start, &due)
	if err == sql.ErrNoRows {
		return nil, model.ErrMilestoneNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("milestone", name).Msg("Erro ao buscar milestone")
		return nil, fmt.Errorf("%w: milestone: %v", model.ErrDataSource, err)
	}

	if start.Valid {
		t := start.Time
		m.Start = &t
	}
	if due.Valid {
		t := due.Time
		m.Due = &t
	}

	rows, err := r.db.Query(`SELECT name FROM milestones WHERE parent = $1 ORDER BY name`, name)
	if err != nil {
		log.Error().Err(err).Str("milestone", name).Msg("Erro ao buscar filhos do milestone")
		return nil, fmt.Errorf("erro ao buscar filhos do milestone: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var child string
		if err := rows.Scan(&child); err != nil {
			return nil, fmt.Errorf("erro ao ler filho do milestone: %w", err)
		}
		m.Children = append(m.Children, child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar filhos do milestone: %w", err)
	}

	return &m, nil
}

// Scope expande o escopo de um milestone: ele próprio mais todos os
// descendentes da árvore
func (r *MilestoneRepository) Scope(name string) ([]string, error) {
	log := logger.Global()

	query := `
		WITH RECURSIVE scope AS (
			SELECT name FROM milestones WHERE name = $1
			UNION ALL
			SELECT m.name
			FROM milestones m
			JOIN scope s ON m.parent = s.name
		)
		SELECT name FROM scope
	`

	rows, err := r.db.Query(query, name)
	if err != nil {
		log.Error().Err(err).Str("milestone", name).Msg("Erro ao expandir escopo do milestone")
		return nil, fmt.Errorf("%w: escopo do milestone: %v", model.ErrDataSource, err)
	}
	defer rows.Close()

	var scope []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("erro ao ler escopo: %w", err)
		}
		scope = append(scope, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar escopo: %w", err)
	}

	if len(scope) == 0 {
		return nil, model.ErrMilestoneNotFound
	}

	return scope, nil
}

// ListChartable lista os milestones com início e entrega definidos
// (os únicos para os quais curvas podem ser geradas)
func (r *MilestoneRepository) ListChartable() ([]model.Milestone, error) {
	log := logger.Global()

	query := `
		SELECT name, start_date, due_date
		FROM milestones
		WHERE start_date IS NOT NULL AND due_date IS NOT NULL
		ORDER BY start_date, name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		log.Error().Err(err).Msg("Erro ao listar milestones")
		return nil, fmt.Errorf("%w: listagem de milestones: %v", model.ErrDataSource, err)
	}
	defer rows.Close()

	var milestones []model.Milestone
	for rows.Next() {
		var m model.Milestone
		var start, due sql.NullTime
		if err := rows.Scan(&m.Name, &start, &due); err != nil {
			return nil, fmt.Errorf("erro ao ler milestone: %w", err)
		}
		if start.Valid {
			t := start.Time
			m.Start = &t
		}
		if due.Valid {
			t := due.Time
			m.Due = &t
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar milestones: %w", err)
	}

	return milestones, nil
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
)

// Chaves das configurações persistidas
const (
	settingUnit      = "unit"
	settingDayPolicy = "day_policy"
	settingBlacklist = "blacklist"
)

// ChartDefaults são os padrões de gráfico persistidos pelo painel
// administrativo, sobrepondo os padrões do ambiente
type ChartDefaults struct {
	Unit      model.Unit
	DayPolicy model.DayPolicy
	Blacklist []time.Time
}

// SettingsRepository gerencia os padrões persistidos dos gráficos
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository cria um novo repositório de configurações
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get lê os padrões persistidos. Retorna nil quando nenhum padrão foi
// salvo ainda (o chamador usa os padrões do ambiente).
func (r *SettingsRepository) Get() (*ChartDefaults, error) {
	log := logger.Global()

	rows, err := r.db.Query(`SELECT key, value FROM burndown_settings`)
	if err != nil {
		log.Error().Err(err).Msg("Erro ao consultar configurações")
		return nil, fmt.Errorf("%w: configurações: %v", model.ErrDataSource, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("erro ao ler configuração: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar configurações: %w", err)
	}

	if len(values) == 0 {
		return nil, nil
	}

	defaults := &ChartDefaults{}

	unit, err := model.ParseUnit(values[settingUnit])
	if err != nil {
		return nil, fmt.Errorf("configuração persistida corrompida: %w", err)
	}
	defaults.Unit = unit

	policy, err := model.ParseDayPolicy(values[settingDayPolicy])
	if err != nil {
		return nil, fmt.Errorf("configuração persistida corrompida: %w", err)
	}
	defaults.DayPolicy = policy

	if raw, ok := values[settingBlacklist]; ok && raw != "" {
		var dates []string
		if err := json.Unmarshal([]byte(raw), &dates); err != nil {
			return nil, fmt.Errorf("blacklist persistida corrompida: %w", err)
		}
		for _, d := range dates {
			t, err := time.Parse(model.DateFormat, d)
			if err != nil {
				return nil, fmt.Errorf("data da blacklist inválida %q: %w", d, err)
			}
			defaults.Blacklist = append(defaults.Blacklist, t)
		}
	}

	return defaults, nil
}

// Set grava os padrões do painel administrativo
func (r *SettingsRepository) Set(defaults ChartDefaults) error {
	log := logger.Global()

	dates := make([]string, len(defaults.Blacklist))
	for i, t := range defaults.Blacklist {
		dates[i] = t.Format(model.DateFormat)
	}
	blacklistJSON, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("erro ao serializar blacklist: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO burndown_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	pairs := map[string]string{
		settingUnit:      defaults.Unit.String(),
		settingDayPolicy: defaults.DayPolicy.String(),
		settingBlacklist: string(blacklistJSON),
	}
	for key, value := range pairs {
		if _, err := tx.Exec(upsert, key, value); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Erro ao gravar configuração")
			return fmt.Errorf("erro ao gravar configuração %s: %w", key, err)
		}
	}

	return tx.Commit()
}

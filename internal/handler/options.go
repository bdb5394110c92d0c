package handler

import (
	"fmt"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/cleberrangel/burndown-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// SettingsSource fornece os padrões persistidos do painel administrativo
type SettingsSource interface {
	Get() (*repository.ChartDefaults, error)
}

// OptionsResolver monta as opções de gráfico de uma requisição:
// parâmetros explícitos têm precedência; na ausência deles valem os
// padrões persistidos e, por fim, os padrões do ambiente. Valores
// explícitos inválidos são rejeitados, nunca substituídos.
type OptionsResolver struct {
	settings SettingsSource

	defaultUnit      model.Unit
	defaultDayPolicy model.DayPolicy
}

// NewOptionsResolver cria um resolvedor de opções
func NewOptionsResolver(settings SettingsSource, defaultUnit model.Unit, defaultDayPolicy model.DayPolicy) *OptionsResolver {
	return &OptionsResolver{
		settings:         settings,
		defaultUnit:      defaultUnit,
		defaultDayPolicy: defaultDayPolicy,
	}
}

// Defaults retorna as opções sem nenhum parâmetro explícito (usadas
// pelo hub de gráficos ao vivo)
func (r *OptionsResolver) Defaults() model.ChartOptions {
	opts := model.ChartOptions{
		Unit:      r.defaultUnit,
		DayPolicy: r.defaultDayPolicy,
		Baseline:  model.BaselineFixed,
	}

	if persisted := r.persisted(); persisted != nil {
		opts.Unit = persisted.Unit
		opts.DayPolicy = persisted.DayPolicy
		opts.Blacklist = persisted.Blacklist
	}

	return opts
}

// Resolve monta as opções a partir da query string da requisição
func (r *OptionsResolver) Resolve(c *gin.Context) (model.ChartOptions, error) {
	opts := r.Defaults()

	if raw := c.Query("unit"); raw != "" {
		unit, err := model.ParseUnit(raw)
		if err != nil {
			return opts, err
		}
		opts.Unit = unit
	}

	if raw := c.Query("days"); raw != "" {
		policy, err := model.ParseDayPolicy(raw)
		if err != nil {
			return opts, err
		}
		opts.DayPolicy = policy
	}

	if raw := c.Query("baseline"); raw != "" {
		baseline, err := model.ParseBaseline(raw)
		if err != nil {
			return opts, err
		}
		opts.Baseline = baseline
	}

	// Datas não úteis adicionais, repetíveis: ?exclude=2024-12-25
	for _, raw := range c.QueryArray("exclude") {
		date, err := time.Parse(model.DateFormat, raw)
		if err != nil {
			return opts, fmt.Errorf("%w: data %q", model.ErrInvalidDayPolicy, raw)
		}
		opts.Blacklist = append(opts.Blacklist, date)
	}

	return opts, nil
}

// persisted lê os padrões do banco, tolerando indisponibilidade
func (r *OptionsResolver) persisted() *repository.ChartDefaults {
	defaults, err := r.settings.Get()
	if err != nil {
		logger.Global().Warn().Err(err).Msg("Padrões persistidos indisponíveis, usando padrões do ambiente")
		return nil
	}
	return defaults
}

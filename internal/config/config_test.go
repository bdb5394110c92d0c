package config

import (
	"errors"
	"testing"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TOKEN_API", "")

	if _, err := Load(); err == nil {
		t.Fatal("esperado erro sem TOKEN_API")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_API", "abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if cfg.DefaultUnit != model.UnitHours {
		t.Errorf("unidade padrão esperada hours, veio %v", cfg.DefaultUnit)
	}
	if cfg.DefaultDayPolicy != model.DaysAll {
		t.Errorf("política padrão esperada all, veio %v", cfg.DefaultDayPolicy)
	}
	if cfg.ChartCacheTTL != 5*time.Minute {
		t.Errorf("TTL padrão esperado 5m, veio %v", cfg.ChartCacheTTL)
	}
	if cfg.Port != "8080" {
		t.Errorf("porta padrão esperada 8080, veio %s", cfg.Port)
	}
}

// Padrão inválido derruba o startup, nunca é trocado silenciosamente
func TestLoadRejectsInvalidDefaults(t *testing.T) {
	t.Setenv("TOKEN_API", "abc")
	t.Setenv("DEFAULT_UNIT", "story_points")

	if _, err := Load(); !errors.Is(err, model.ErrInvalidUnit) {
		t.Fatalf("esperado ErrInvalidUnit, veio %v", err)
	}

	t.Setenv("DEFAULT_UNIT", "points")
	t.Setenv("DEFAULT_DAY_POLICY", "feriados")

	if _, err := Load(); !errors.Is(err, model.ErrInvalidDayPolicy) {
		t.Fatalf("esperado ErrInvalidDayPolicy, veio %v", err)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("TOKEN_API", "abc")
	t.Setenv("DEFAULT_UNIT", "items")
	t.Setenv("DEFAULT_DAY_POLICY", "weekdays")
	t.Setenv("CHART_CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if cfg.DefaultUnit != model.UnitItems || cfg.DefaultDayPolicy != model.DaysWeekdays {
		t.Errorf("padrões do ambiente não aplicados: %+v", cfg)
	}
	if cfg.ChartCacheTTL != 90*time.Second {
		t.Errorf("TTL esperado 90s, veio %v", cfg.ChartCacheTTL)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 5 {
		t.Errorf("limites não aplicados: rps=%v burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	t.Setenv("CHART_CACHE_TTL", "cinco minutos")
	if _, err := Load(); err == nil {
		t.Error("duração inválida deveria ser rejeitada")
	}
}

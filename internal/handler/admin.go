package handler

import (
	"net/http"
	"time"

	"github.com/cleberrangel/burndown-api/internal/cache"
	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/cleberrangel/burndown-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// AdminHandler manipula o painel de configurações dos gráficos
type AdminHandler struct {
	settings *repository.SettingsRepository
	resolver *OptionsResolver
	cache    *cache.ChartCache
}

// NewAdminHandler cria um novo handler administrativo
func NewAdminHandler(settings *repository.SettingsRepository, resolver *OptionsResolver, chartCache *cache.ChartCache) *AdminHandler {
	return &AdminHandler{
		settings: settings,
		resolver: resolver,
		cache:    chartCache,
	}
}

// GetSettings retorna os padrões vigentes (persistidos ou do ambiente)
func (h *AdminHandler) GetSettings(c *gin.Context) {
	opts := h.resolver.Defaults()

	blacklist := make([]string, len(opts.Blacklist))
	for i, d := range opts.Blacklist {
		blacklist[i] = d.Format(model.DateFormat)
	}

	c.JSON(http.StatusOK, model.SettingsPayload{
		Unit:      opts.Unit.String(),
		DayPolicy: opts.DayPolicy.String(),
		Blacklist: blacklist,
	})
}

// UpdateSettings grava novos padrões e invalida o cache de gráficos
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var payload model.SettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return
	}

	unit, err := model.ParseUnit(payload.Unit)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "unidade inválida",
			Details: err.Error(),
		})
		return
	}

	policy, err := model.ParseDayPolicy(payload.DayPolicy)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "política de dias inválida",
			Details: err.Error(),
		})
		return
	}

	defaults := repository.ChartDefaults{
		Unit:      unit,
		DayPolicy: policy,
	}
	for _, raw := range payload.Blacklist {
		date, err := time.Parse(model.DateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Success: false,
				Error:   "data da blacklist inválida",
				Details: raw,
			})
			return
		}
		defaults.Blacklist = append(defaults.Blacklist, date)
	}

	if err := h.settings.Set(defaults); err != nil {
		logger.FromGin(c).Error().Err(err).Msg("Erro ao gravar configurações")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro ao gravar configurações",
		})
		return
	}

	// Gráficos cacheados foram computados com os padrões antigos
	h.cache.Clear()

	logger.FromGin(c).Info().
		Str("unit", unit.String()).
		Str("day_policy", policy.String()).
		Int("blacklist", len(defaults.Blacklist)).
		Msg("Configurações dos gráficos atualizadas")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

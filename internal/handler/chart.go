package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cleberrangel/burndown-api/internal/cache"
	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/metrics"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/cleberrangel/burndown-api/internal/service"
	"github.com/gin-gonic/gin"
)

// MilestoneLister lista os milestones com curvas computáveis
type MilestoneLister interface {
	ListChartable() ([]model.Milestone, error)
}

// ChartHandler manipula as requisições de gráficos de burndown
type ChartHandler struct {
	chartService *service.ChartService
	excel        *service.ExcelGenerator
	milestones   MilestoneLister
	resolver     *OptionsResolver
	cache        *cache.ChartCache
}

// NewChartHandler cria um novo handler de gráficos
func NewChartHandler(chartService *service.ChartService, milestones MilestoneLister, resolver *OptionsResolver, chartCache *cache.ChartCache) *ChartHandler {
	return &ChartHandler{
		chartService: chartService,
		excel:        service.NewExcelGenerator(),
		milestones:   milestones,
		resolver:     resolver,
		cache:        chartCache,
	}
}

// GetBurndown retorna as quatro curvas de um milestone
// @Summary      Curvas de burndown
// @Description  Computa esforço restante, esforço da equipe, escopo adicionado e curva ideal
// @Tags         charts
// @Produce      json
// @Security     BearerAuth
// @Param        name query string true "Nome do milestone"
// @Param        unit query string false "items | hours | points"
// @Param        days query string false "all | weekdays | custom"
// @Param        baseline query string false "fixed | variable"
// @Success      200 {object} model.ChartResponse
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/v1/milestones/{name}/burndown [get]
func (h *ChartHandler) GetBurndown(c *gin.Context) {
	chart, ok := h.buildChart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chart)
}

// ExportBurndown exporta as curvas de um milestone em Excel
func (h *ChartHandler) ExportBurndown(c *gin.Context) {
	chart, ok := h.buildChart(c)
	if !ok {
		return
	}

	if chart.NoData {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "sem dados para exportar",
			Details: "nenhum snapshot registrado para este milestone",
		})
		return
	}

	buf, err := h.excel.Generate(chart)
	metrics.Get().IncrementExport(err == nil)
	if err != nil {
		logger.FromGin(c).Error().Err(err).Msg("Erro ao gerar Excel")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro ao gerar planilha",
			Details: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("burndown_%s_%s.xlsx", chart.Milestone, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ListMilestones lista os milestones com início e entrega definidos
func (h *ChartHandler) ListMilestones(c *gin.Context) {
	milestones, err := h.milestones.ListChartable()
	if err != nil {
		logger.FromGin(c).Error().Err(err).Msg("Erro ao listar milestones")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro ao listar milestones",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"milestones": milestones,
	})
}

// buildChart resolve opções, consulta o cache e computa o gráfico.
// Escreve a resposta de erro e retorna false quando algo falha.
func (h *ChartHandler) buildChart(c *gin.Context) (*model.ChartResponse, bool) {
	name := c.Param("name")

	opts, err := h.resolver.Resolve(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "parâmetros inválidos",
			Details: err.Error(),
		})
		return nil, false
	}

	key := cacheKey(name, opts)
	if chart, ok := h.cache.Get(key); ok {
		metrics.Get().IncrementCacheHit(true)
		return chart, true
	}
	metrics.Get().IncrementCacheHit(false)

	chart, err := h.chartService.BuildChart(c.Request.Context(), name, opts)
	metrics.Get().IncrementChartComputed(err == nil)
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}

	h.cache.Set(key, chart)
	return chart, true
}

// handleError trata erros e retorna resposta apropriada
func (h *ChartHandler) handleError(c *gin.Context, err error) {
	log := logger.FromGin(c)

	switch {
	case errors.Is(err, model.ErrMilestoneNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "milestone não encontrado",
			Details: "verifique o nome do milestone",
		})
	case errors.Is(err, model.ErrNoSchedule):
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Success: false,
			Error:   "milestone sem agenda",
			Details: "o milestone precisa de data de início e de entrega",
		})
	case errors.Is(err, model.ErrInvalidDateRange):
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Success: false,
			Error:   "intervalo de datas inválido",
			Details: err.Error(),
		})
	default:
		log.Error().Err(err).Msg("Erro ao computar gráfico")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
	}
}

// cacheKey identifica um gráfico por milestone e opções
func cacheKey(name string, opts model.ChartOptions) string {
	excludes := make([]string, len(opts.Blacklist))
	for i, d := range opts.Blacklist {
		excludes[i] = d.Format(model.DateFormat)
	}
	return cache.Key(name,
		opts.Unit.String(),
		opts.DayPolicy.String(),
		opts.Baseline.String(),
		strings.Join(excludes, ","),
	)
}

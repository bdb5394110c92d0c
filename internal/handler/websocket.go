package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/cleberrangel/burndown-api/internal/service"
	"github.com/cleberrangel/burndown-api/internal/websocket"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler inscreve clientes no gráfico ao vivo de um milestone
type WebSocketHandler struct {
	hub          *websocket.Hub
	chartService *service.ChartService
	resolver     *OptionsResolver
}

// NewWebSocketHandler cria um novo handler de websocket
func NewWebSocketHandler(hub *websocket.Hub, chartService *service.ChartService, resolver *OptionsResolver) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		chartService: chartService,
		resolver:     resolver,
	}
}

// Subscribe faz o upgrade da conexão e envia o gráfico atual seguido
// das atualizações periódicas do hub
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	name := c.Param("name")
	log := logger.FromGin(c)

	// Computa o gráfico inicial antes do upgrade para poder responder
	// 404 em milestone inexistente
	chart, err := h.chartService.BuildChart(c.Request.Context(), name, h.resolver.Defaults())
	if err != nil {
		if errors.Is(err, model.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Success: false,
				Error:   "milestone não encontrado",
			})
			return
		}
		log.Error().Err(err).Str("milestone", name).Msg("Erro ao computar gráfico inicial")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
		})
		return
	}

	initial, err := json.Marshal(websocket.Message{
		Type:      "chart",
		Data:      chart,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
		})
		return
	}

	if err := websocket.ServeWS(h.hub, c.Writer, c.Request, name, initial); err != nil {
		log.Warn().Err(err).Str("milestone", name).Msg("Erro no upgrade da conexão websocket")
	}
}

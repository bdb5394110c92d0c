package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/cleberrangel/burndown-api/internal/database"
	"github.com/cleberrangel/burndown-api/internal/metrics"
	"github.com/cleberrangel/burndown-api/internal/websocket"
	"github.com/gin-gonic/gin"
)

// HealthHandler manipula as rotas de health check
type HealthHandler struct {
	db        *sql.DB
	wsHub     *websocket.Hub
	version   string
	startTime time.Time
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(db *sql.DB, wsHub *websocket.Hub, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		wsHub:     wsHub,
		version:   version,
		startTime: time.Now(),
	}
}

// Health retorna o estado do serviço e das dependências
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	statusCode := http.StatusOK

	dbStatus := "ok"
	if err := h.db.Ping(); err != nil {
		dbStatus = err.Error()
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":         status,
		"version":        h.version,
		"uptime":         time.Since(h.startTime).String(),
		"database":       dbStatus,
		"database_pool":  database.GetPoolStats(h.db),
		"ws_subscribers": h.wsHub.SubscriberCount(),
	})
}

// Metrics retorna a fotografia atual dos contadores da aplicação
func (h *HealthHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Get().Snapshot())
}

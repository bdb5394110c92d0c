package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/metrics"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/rs/zerolog"
)

// ChartBuilder recomputa o gráfico de um milestone sob as opções padrão
type ChartBuilder func(ctx context.Context, milestone string) (*model.ChartResponse, error)

// Message é o envelope enviado aos assinantes
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub mantém os assinantes por milestone e reenvia gráficos
// recomputados a cada intervalo de atualização
type Hub struct {
	// Assinantes agrupados por milestone
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	build           ChartBuilder
	refreshInterval time.Duration

	mutex  sync.RWMutex
	logger *zerolog.Logger
}

// NewHub cria um novo hub de gráficos ao vivo
func NewHub(build ChartBuilder, refreshInterval time.Duration) *Hub {
	return &Hub{
		clients:         make(map[string]map[*Client]bool),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		build:           build,
		refreshInterval: refreshInterval,
		logger:          logger.Global(),
	}
}

// Run processa registros e o ciclo de atualização até o contexto encerrar
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case <-ticker.C:
			h.refresh(ctx)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Register inscreve um cliente no milestone dele
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister remove um cliente
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SubscriberCount retorna o total de assinantes conectados
func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}

func (h *Hub) addClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.clients[client.Milestone] == nil {
		h.clients[client.Milestone] = make(map[*Client]bool)
	}
	h.clients[client.Milestone][client] = true
	metrics.Get().IncrementWSConnection()

	h.logger.Info().
		Str("milestone", client.Milestone).
		Int("subscribers", len(h.clients[client.Milestone])).
		Msg("Cliente inscrito no gráfico ao vivo")
}

func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.clients[client.Milestone]; ok {
		if _, registered := clients[client]; registered {
			delete(clients, client)
			close(client.Send)
			metrics.Get().DecrementWSConnection()
			if len(clients) == 0 {
				delete(h.clients, client.Milestone)
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for milestone, clients := range h.clients {
		for client := range clients {
			close(client.Send)
			metrics.Get().DecrementWSConnection()
		}
		delete(h.clients, milestone)
	}
}

// refresh recomputa o gráfico de cada milestone com assinantes e envia
// o resultado. Clientes com buffer cheio são pulados, nunca bloqueiam
// o ciclo.
func (h *Hub) refresh(ctx context.Context) {
	h.mutex.RLock()
	milestones := make([]string, 0, len(h.clients))
	for milestone := range h.clients {
		milestones = append(milestones, milestone)
	}
	h.mutex.RUnlock()

	for _, milestone := range milestones {
		chart, err := h.build(ctx, milestone)
		if err != nil {
			h.logger.Warn().Err(err).
				Str("milestone", milestone).
				Msg("Erro ao recomputar gráfico para assinantes")
			continue
		}

		payload, err := json.Marshal(Message{
			Type:      "chart",
			Data:      chart,
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("Erro ao serializar gráfico")
			continue
		}

		h.Broadcast(milestone, payload)
	}
}

// Broadcast envia um payload a todos os assinantes de um milestone
func (h *Hub) Broadcast(milestone string, payload []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients[milestone] {
		select {
		case client.Send <- payload:
		default:
			// Buffer cheio: descarta para este cliente
		}
	}
}

package websocket

import (
	"net/http"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/gorilla/websocket"
)

const (
	// Tempo máximo para escrever uma mensagem
	writeWait = 10 * time.Second

	// Tempo máximo de espera pelo pong do cliente
	pongWait = 60 * time.Second

	// Intervalo de ping; precisa ser menor que pongWait
	pingPeriod = (pongWait * 9) / 10

	// Tamanho máximo de mensagens vindas do cliente
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client intermedia uma conexão websocket e o hub
type Client struct {
	conn *websocket.Conn

	// Send é o canal de mensagens de saída (bufferizado)
	Send chan []byte

	// Milestone assinado por este cliente
	Milestone string

	hub *Hub
}

// ServeWS faz o upgrade da conexão e inscreve o cliente no milestone.
// initial, quando não nulo, é enviado imediatamente após a inscrição.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, milestone string, initial []byte) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		conn:      conn,
		Send:      make(chan []byte, 8),
		Milestone: milestone,
		hub:       hub,
	}
	hub.Register(client)

	if initial != nil {
		client.Send <- initial
	}

	go client.writePump()
	go client.readPump()
	return nil
}

// readPump descarta mensagens do cliente e mantém o deadline de pong
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Global().Debug().Err(err).
					Str("milestone", c.Milestone).
					Msg("Conexão websocket encerrada inesperadamente")
			}
			return
		}
	}
}

// writePump envia mensagens do hub para a conexão e pinga o cliente
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub fechou o canal
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

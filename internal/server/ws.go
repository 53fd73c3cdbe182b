package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // local test server
	},
}

const writeWait = 10 * time.Second

// WebSocket message types to client.
const (
	msgHello  = "hello"
	msgReport = "report"
	msgError  = "error"
)

// message is the envelope for every websocket frame sent to clients.
type message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type helloData struct {
	ClientID string `json:"client_id"`
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

func (c *client) send(msgType string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message{Type: msgType, Data: data})
}

// hub tracks connected websocket clients.
type hub struct {
	logger  *slog.Logger
	mu      sync.Mutex
	clients map[string]*client
}

func newHub(logger *slog.Logger) *hub {
	return &hub{logger: logger, clients: make(map[string]*client)}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

func (h *hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) broadcast(msgType string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		h.logger.Warn("ws marshal", "error", err)
		return
	}
	for _, c := range h.snapshot() {
		if err := c.send(msgType, raw); err != nil {
			h.logger.Debug("ws write failed, dropping client", "client_id", c.id, "error", err)
			h.remove(c.id)
			c.conn.Close()
		}
	}
}

func (h *hub) closeAll() {
	for _, c := range h.snapshot() {
		c.mu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		c.conn.Close()
		h.remove(c.id)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	c := &client{id: uuid.NewString(), conn: conn}
	logger := s.logger.With("client_id", c.id)
	logger.Debug("websocket client connected")

	// hello goes out before the client can receive broadcasts.
	hello, _ := json.Marshal(helloData{ClientID: c.id})
	if err := c.send(msgHello, hello); err != nil {
		return
	}
	s.hub.add(c)
	defer s.hub.remove(c.id)

	if report := s.Latest(); report != nil {
		raw, err := json.Marshal(report)
		if err == nil {
			err = c.send(msgReport, raw)
		}
		if err != nil {
			logger.Warn("sending latest report", "error", err)
			return
		}
	}

	// Clients only listen; reading drains control frames and notices
	// disconnects.
	for {
		var in message
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read", "error", err)
			}
			return
		}
		raw, _ := json.Marshal(map[string]string{"message": "unexpected message type: " + in.Type})
		if err := c.send(msgError, raw); err != nil {
			return
		}
	}
}

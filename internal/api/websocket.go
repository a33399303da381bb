package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/openepaper/epaper-mock/internal/infrastructure/config"
	"github.com/openepaper/epaper-mock/internal/infrastructure/logging"
	"github.com/openepaper/epaper-mock/internal/state"
)

// WebSocket message kinds. The wire format is a flat JSON object carrying
// "type" plus kind-specific fields, matching what the device firmware and
// front-end clients exchange.
const (
	// Inbound kinds.
	WSTypeUpdateVariable = "update-variable"
	WSTypeUpdateTemplate = "update-template"
	WSTypeRefreshDisplay = "refresh-display"
	WSTypeResolve        = "resolve"

	// Outbound kinds.
	WSTypeVariableBatch    = "variable-update-batch"
	WSTypeVariableUpdate   = "variable-update"
	WSTypeTemplateUpdate   = "template-update"
	WSTypeDisplayRefreshed = "display-refreshed"
	WSTypeError            = "error"

	// wsSendBufferSize is the per-client outbound message buffer size.
	wsSendBufferSize = 256
)

// wsInbound is the decoded form of a client message. Fields beyond Type are
// kind-specific; unused ones stay at their zero value.
type wsInbound struct {
	Type      string          `json:"type"`
	Name      string          `json:"name,omitempty"`
	Value     string          `json:"value,omitempty"`
	Template  *state.Template `json:"template,omitempty"`
	Variables []string        `json:"variables,omitempty"`
}

// wsVariableBatch carries the full variable mapping, sent to an observer on join.
type wsVariableBatch struct {
	Type      string            `json:"type"`
	Variables map[string]string `json:"variables"`
}

// wsVariableUpdate notifies observers of a single variable change.
type wsVariableUpdate struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// wsTemplateUpdate notifies observers of a template upsert.
type wsTemplateUpdate struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Template state.Template `json:"template"`
}

// wsDisplayRefreshed acknowledges a simulated display refresh to its originator.
type wsDisplayRefreshed struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Success   bool   `json:"success"`
}

// wsResolvePair is one name/value entry in a resolve reply.
type wsResolvePair struct {
	K string `json:"k"`
	V string `json:"v"`
}

// wsResolveReply answers a resolve request with current variable values.
type wsResolveReply struct {
	Type string          `json:"type"`
	Body []wsResolvePair `json:"body"`
}

// wsError reports a fault back to the offending observer only.
type wsError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Hub manages WebSocket connections and fans out state-change notifications.
type Hub struct {
	cfg     config.WebSocketConfig
	logger  *logging.Logger
	clients map[*WSClient]struct{}
	mu      sync.RWMutex
}

// WSClient represents a connected live observer.
type WSClient struct {
	// id identifies the observer for broadcast exclusion, so a mutation's
	// originator never receives an echo of its own write.
	id   string
	srv  *Server
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// upgrader configures the WebSocket upgrader.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// Origin checking is handled by CORS middleware
		return true
	},
}

// NewHub creates a new WebSocket hub.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[*WSClient]struct{}),
	}
}

// Run starts the hub's main loop. It blocks until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// Register adds a client to the hub.
func (h *Hub) Register(client *WSClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "client_id", client.id, "clients", h.ClientCount())
}

// Unregister removes a client from the hub.
// Only the goroutine that successfully removes the client from the map
// closes the send channel, preventing double-close panics during shutdown.
func (h *Hub) Unregister(client *WSClient) {
	h.mu.Lock()
	_, existed := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if existed {
		close(client.send)
	}
	h.logger.Debug("websocket client disconnected", "client_id", client.id, "clients", h.ClientCount())
}

// Broadcast sends a message to every connected observer except the one whose
// id matches excludeID. An empty excludeID delivers to all observers, which
// is the REST-originated mutation path.
//
// Lock ordering: the client set is snapshotted under the hub lock, then the
// lock is released before sending, so a slow client never blocks the hub.
func (h *Hub) Broadcast(v any, excludeID string) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*WSClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	sentCount := 0
	for _, client := range clients {
		if client.id == excludeID {
			continue
		}
		client.trySend(data)
		sentCount++
	}
	if sentCount > 0 {
		h.logger.Debug("broadcast sent", "recipients", sentCount)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// closeAll disconnects all clients and closes their send channels
// so writePump goroutines can exit cleanly.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		if client.conn != nil {
			client.conn.Close()
		}
		delete(h.clients, client)
	}
}

// handleWebSocket upgrades the HTTP connection and registers the observer.
// A newly joined observer immediately receives the full variable mapping so
// it is consistent with store state at join time.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &WSClient{
		id:   uuid.NewString(),
		srv:  s,
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, wsSendBufferSize),
	}

	s.hub.Register(client)

	client.sendJSON(wsVariableBatch{
		Type:      WSTypeVariableBatch,
		Variables: s.store.Variables(),
	})

	// Start read/write pumps
	go client.writePump(s.wsCfg)
	go client.readPump(s.wsCfg)
}

// readPump reads messages from the WebSocket connection.
func (c *WSClient) readPump(cfg config.WebSocketConfig) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(cfg.MaxMessageSize))
	pingInterval := time.Duration(cfg.PingInterval) * time.Second
	pongWait := time.Duration(cfg.PongTimeout) * time.Second
	//nolint:errcheck // Best-effort deadline on connection setup
	c.conn.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			} else {
				c.hub.logger.Debug("websocket closed", "error", err)
			}
			return
		}
		// Any client message resets the read deadline (keeps connection alive
		// even if the client doesn't respond to protocol-level pings).
		//nolint:errcheck // Best-effort deadline reset
		c.conn.SetReadDeadline(time.Now().Add(pingInterval + pongWait))
		c.handleMessage(message)
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WSClient) writePump(cfg config.WebSocketConfig) {
	pingInterval := time.Duration(cfg.PingInterval) * time.Second
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	pongWait := time.Duration(cfg.PongTimeout) * time.Second

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				// Hub closed the channel
				//nolint:errcheck // Best-effort close message
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			//nolint:errcheck // Best-effort deadline; write error caught below
			c.conn.SetWriteDeadline(time.Now().Add(pongWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // Best-effort deadline; ping error caught below
			c.conn.SetWriteDeadline(time.Now().Add(pongWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches one inbound message. A malformed message is
// answered with an error reply to the originator only; the connection
// remains open.
func (c *WSClient) handleMessage(data []byte) {
	var msg wsInbound
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("invalid JSON message")
		return
	}

	switch msg.Type {
	case WSTypeUpdateVariable:
		c.handleUpdateVariable(msg)
	case WSTypeUpdateTemplate:
		c.handleUpdateTemplate(msg)
	case WSTypeRefreshDisplay:
		c.handleRefreshDisplay()
	case WSTypeResolve:
		c.handleResolve(msg)
	default:
		c.sendError("unknown message type: " + msg.Type)
	}
}

// handleUpdateVariable applies a variable write from a live observer and
// broadcasts it to the other observers (mutate, persist, broadcast).
func (c *WSClient) handleUpdateVariable(msg wsInbound) {
	if msg.Name == "" {
		c.sendError("name field is required")
		return
	}

	c.srv.store.SetVariable(msg.Name, msg.Value)

	c.hub.Broadcast(wsVariableUpdate{
		Type:  WSTypeVariableUpdate,
		Name:  msg.Name,
		Value: msg.Value,
	}, c.id)
	c.srv.mirrorVariable(msg.Name, msg.Value, "ws")
}

// handleUpdateTemplate applies a template upsert from a live observer and
// broadcasts it to the other observers.
func (c *WSClient) handleUpdateTemplate(msg wsInbound) {
	if msg.Template == nil {
		c.sendError("template field is required")
		return
	}

	tpl := *msg.Template
	if tpl.Name == "" {
		tpl.Name = msg.Name
	}
	if tpl.Name == "" {
		c.sendError("template name is required")
		return
	}

	c.srv.store.UpsertTemplate(tpl)

	c.hub.Broadcast(wsTemplateUpdate{
		Type:     WSTypeTemplateUpdate,
		Name:     tpl.Name,
		Template: tpl,
	}, c.id)
}

// handleRefreshDisplay simulates a display refresh: it records the refresh
// time in the last_display_refresh variable and acknowledges the originator
// only. Other observers learn of the refresh via the variable on their next
// read, not via broadcast.
func (c *WSClient) handleRefreshDisplay() {
	now := time.Now()

	c.sendJSON(wsDisplayRefreshed{
		Type:      WSTypeDisplayRefreshed,
		Timestamp: now.UnixMilli(),
		Success:   true,
	})

	c.srv.store.SetVariable(state.VarLastDisplayRefresh, strconv.FormatInt(now.Unix(), 10))

	if c.srv.influx != nil {
		settings := c.srv.store.Settings()
		c.srv.influx.WriteRefreshEvent(settings.Display.TemplateName)
	}
}

// handleResolve answers a read-only variable lookup. Missing variables
// resolve to empty strings, never an error.
func (c *WSClient) handleResolve(msg wsInbound) {
	vars := c.srv.store.Variables()

	body := make([]wsResolvePair, 0, len(msg.Variables))
	for _, name := range msg.Variables {
		body = append(body, wsResolvePair{K: name, V: vars[name]})
	}

	c.sendJSON(wsResolveReply{
		Type: WSTypeResolve,
		Body: body,
	})
}

// trySend attempts to send data to the client's send channel.
// It silently handles closed channels (client disconnected during broadcast)
// and full buffers (slow client).
func (c *WSClient) trySend(data []byte) {
	defer func() {
		recover() //nolint:errcheck // Absorb send-on-closed-channel panic
	}()

	select {
	case c.send <- data:
	default:
		// Client buffer full, skip
	}
}

// sendJSON marshals and sends a message to this client only.
// Routes through trySend to safely handle closed channels during shutdown.
func (c *WSClient) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.trySend(data)
}

// sendError sends an error message to this client only.
func (c *WSClient) sendError(message string) {
	c.sendJSON(wsError{Type: WSTypeError, Message: message})
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/openepaper/epaper-mock/internal/state"
)

// wsReadTimeout bounds how long a test waits for an expected message.
const wsReadTimeout = 2 * time.Second

// testWSServer starts an httptest server around the router for real
// WebSocket dials.
func testWSServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	t.Cleanup(ts.Close)
	return srv, ts
}

// dialWS connects a WebSocket client to the test server.
func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v (resp: %v)", err, resp)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readWS reads the next message with a deadline and decodes it generically.
func readWS(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal message: %v (raw: %s)", err, data)
	}
	return msg
}

// expectNoMessage asserts that no message arrives within a short window.
func expectNoMessage(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected message received: %s", data)
	}
}

// writeWS sends a JSON message from the test client.
func writeWS(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()

	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write message: %v", err)
	}
}

func TestWebSocket_CatchUpBatchOnJoin(t *testing.T) {
	srv, ts := testWSServer(t)
	srv.store.SetVariable("humidity", "50")

	conn := dialWS(t, ts)

	msg := readWS(t, conn)
	if msg["type"] != WSTypeVariableBatch {
		t.Fatalf("first message type = %v, want %s", msg["type"], WSTypeVariableBatch)
	}

	vars, ok := msg["variables"].(map[string]any)
	if !ok {
		t.Fatalf("variables = %v, want object", msg["variables"])
	}
	if vars["humidity"] != "50" {
		t.Errorf("catch-up humidity = %v, want 50", vars["humidity"])
	}
}

func TestWebSocket_UpdateVariable_EchoSuppression(t *testing.T) {
	srv, ts := testWSServer(t)

	sender := dialWS(t, ts)
	observer := dialWS(t, ts)
	readWS(t, sender)   // consume catch-up batch
	readWS(t, observer) // consume catch-up batch

	writeWS(t, sender, map[string]any{
		"type":  WSTypeUpdateVariable,
		"name":  "weather",
		"value": "stormy",
	})

	// The other observer receives the update
	msg := readWS(t, observer)
	if msg["type"] != WSTypeVariableUpdate {
		t.Fatalf("type = %v, want %s", msg["type"], WSTypeVariableUpdate)
	}
	if msg["name"] != "weather" || msg["value"] != "stormy" {
		t.Errorf("update = %v/%v, want weather/stormy", msg["name"], msg["value"])
	}

	// The originator never receives an echo of its own write
	expectNoMessage(t, sender)

	// The store applied and will persist the mutation
	if got := srv.store.Variable("weather"); got != "stormy" {
		t.Errorf("store weather = %q, want stormy", got)
	}
}

func TestWebSocket_RESTMutationReachesAllObservers(t *testing.T) {
	_, ts := testWSServer(t)

	first := dialWS(t, ts)
	second := dialWS(t, ts)
	readWS(t, first)
	readWS(t, second)

	body := strings.NewReader(`{"name":"battery","value":"90"}`)
	resp, err := http.Post(ts.URL+"/api/v1/variables", "application/json", body)
	if err != nil {
		t.Fatalf("POST /variables: %v", err)
	}
	resp.Body.Close()

	// REST callers have no observer identity, so both clients see the update
	for _, conn := range []*websocket.Conn{first, second} {
		msg := readWS(t, conn)
		if msg["type"] != WSTypeVariableUpdate || msg["name"] != "battery" {
			t.Errorf("message = %v, want battery variable-update", msg)
		}
	}
}

func TestWebSocket_UpdateTemplate(t *testing.T) {
	srv, ts := testWSServer(t)

	sender := dialWS(t, ts)
	observer := dialWS(t, ts)
	readWS(t, sender)
	readWS(t, observer)

	writeWS(t, sender, map[string]any{
		"type": WSTypeUpdateTemplate,
		"name": "badge",
		"template": state.Template{
			Name:   "badge",
			Width:  200,
			Height: 200,
		},
	})

	msg := readWS(t, observer)
	if msg["type"] != WSTypeTemplateUpdate {
		t.Fatalf("type = %v, want %s", msg["type"], WSTypeTemplateUpdate)
	}
	if msg["name"] != "badge" {
		t.Errorf("name = %v, want badge", msg["name"])
	}

	expectNoMessage(t, sender)

	if _, err := srv.store.Template("badge"); err != nil {
		t.Errorf("template not stored: %v", err)
	}
}

func TestWebSocket_RefreshDisplay(t *testing.T) {
	srv, ts := testWSServer(t)

	sender := dialWS(t, ts)
	observer := dialWS(t, ts)
	readWS(t, sender)
	readWS(t, observer)

	writeWS(t, sender, map[string]any{"type": WSTypeRefreshDisplay})

	// Acknowledgment goes to the originator only
	msg := readWS(t, sender)
	if msg["type"] != WSTypeDisplayRefreshed {
		t.Fatalf("type = %v, want %s", msg["type"], WSTypeDisplayRefreshed)
	}
	if msg["success"] != true {
		t.Errorf("success = %v, want true", msg["success"])
	}
	if _, ok := msg["timestamp"].(float64); !ok {
		t.Errorf("timestamp = %v, want number", msg["timestamp"])
	}

	expectNoMessage(t, observer)

	if got := srv.store.Variable(state.VarLastDisplayRefresh); got == "" {
		t.Error("last_display_refresh variable not set")
	}
}

func TestWebSocket_Resolve(t *testing.T) {
	srv, ts := testWSServer(t)
	srv.store.SetVariable("temperature", "21.5")

	conn := dialWS(t, ts)
	readWS(t, conn)

	writeWS(t, conn, map[string]any{
		"type":      WSTypeResolve,
		"variables": []string{"temperature", "no_such_var"},
	})

	msg := readWS(t, conn)
	if msg["type"] != WSTypeResolve {
		t.Fatalf("type = %v, want %s", msg["type"], WSTypeResolve)
	}

	body, ok := msg["body"].([]any)
	if !ok || len(body) != 2 {
		t.Fatalf("body = %v, want 2 pairs", msg["body"])
	}
	first := body[0].(map[string]any)
	if first["k"] != "temperature" || first["v"] != "21.5" {
		t.Errorf("pair = %v, want temperature/21.5", first)
	}
	second := body[1].(map[string]any)
	if second["v"] != "" {
		t.Errorf("missing variable resolved to %v, want empty string", second["v"])
	}
}

func TestWebSocket_MalformedMessage(t *testing.T) {
	srv, ts := testWSServer(t)

	conn := dialWS(t, ts)
	readWS(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	msg := readWS(t, conn)
	if msg["type"] != WSTypeError {
		t.Fatalf("type = %v, want %s", msg["type"], WSTypeError)
	}

	// The connection stays open and keeps working
	writeWS(t, conn, map[string]any{
		"type":  WSTypeUpdateVariable,
		"name":  "after_error",
		"value": "ok",
	})

	deadline := time.Now().Add(wsReadTimeout)
	for time.Now().Before(deadline) {
		if srv.store.Variable("after_error") == "ok" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("variable update after error was not applied")
}

func TestWebSocket_UnknownMessageType(t *testing.T) {
	_, ts := testWSServer(t)

	conn := dialWS(t, ts)
	readWS(t, conn)

	writeWS(t, conn, map[string]any{"type": "self-destruct"})

	msg := readWS(t, conn)
	if msg["type"] != WSTypeError {
		t.Fatalf("type = %v, want %s", msg["type"], WSTypeError)
	}
	errMsg, _ := msg["message"].(string)
	if !strings.Contains(errMsg, "self-destruct") {
		t.Errorf("message = %q, want it to name the unknown type", errMsg)
	}
}

func TestHub_UnregisterClosesOnce(t *testing.T) {
	srv := testServer(t)
	hub := NewHub(srv.wsCfg, srv.logger)

	client := &WSClient{
		id:   "c1",
		hub:  hub,
		send: make(chan []byte, 1),
	}

	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Fatalf("client count = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	// A second unregister of the same client must not panic on double-close
	hub.Unregister(client)

	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", hub.ClientCount())
	}
}

func TestHub_BroadcastSkipsExcluded(t *testing.T) {
	srv := testServer(t)
	hub := srv.hub

	included := &WSClient{id: "a", hub: hub, send: make(chan []byte, 1)}
	excluded := &WSClient{id: "b", hub: hub, send: make(chan []byte, 1)}
	hub.Register(included)
	hub.Register(excluded)

	hub.Broadcast(wsVariableUpdate{Type: WSTypeVariableUpdate, Name: "n", Value: "v"}, "b")

	select {
	case <-included.send:
	default:
		t.Error("included client did not receive broadcast")
	}
	select {
	case data := <-excluded.send:
		t.Errorf("excluded client received broadcast: %s", data)
	default:
	}
}

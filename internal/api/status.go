package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Emulated display panel dimensions. The mock models a 2.9" landscape panel.
const (
	mockDisplayWidth  = 296
	mockDisplayHeight = 128
)

// handleNetworkWifi returns synthetic WiFi status. Identity fields come from
// settings; signal and addressing are fixed mock values.
func (s *Server) handleNetworkWifi(w http.ResponseWriter, _ *http.Request) {
	settings := s.store.Settings()

	writeJSON(w, http.StatusOK, map[string]any{
		"ssid":     settings.Network.WiFiSSID,
		"rssi":     -65,
		"ip":       "192.168.1.100",
		"hostname": settings.Network.Hostname,
		"mac":      "AA:BB:CC:DD:EE:FF",
	})
}

// handleMQTTStatus returns the device's messaging-transport status. When the
// mirror client is configured, the connected flag reflects the real broker
// connection; otherwise the mock always reports connected.
func (s *Server) handleMQTTStatus(w http.ResponseWriter, _ *http.Request) {
	settings := s.store.Settings()

	connected := true
	if s.mqtt != nil {
		connected = s.mqtt.IsConnected()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected":  connected,
		"host":       settings.MQTT.Host,
		"port":       settings.MQTT.Port,
		"client_id":  "epaper_" + uuid.NewString()[:8],
		"last_error": "",
	})
}

// handleDisplayStatus returns the emulated panel status.
func (s *Server) handleDisplayStatus(w http.ResponseWriter, _ *http.Request) {
	settings := s.store.Settings()

	writeJSON(w, http.StatusOK, map[string]any{
		"type":             settings.Display.DisplayType,
		"width":            mockDisplayWidth,
		"height":           mockDisplayHeight,
		"current_template": settings.Display.TemplateName,
		"last_updated":     time.Now().UnixMilli(),
	})
}

package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// Fixed hardware identity reported by the mock. Real firmware reads these
// from the chip; the mock advertises recognisable placeholder values.
const (
	mockChipID   = "MOCK_ESP32"
	mockFreeHeap = 131072
)

// SystemCommandRequest is the body of POST /system.
type SystemCommandRequest struct {
	Command string `json:"command"`
}

// handleSystemInfo returns device identity, firmware info, and uptime.
func (s *Server) handleSystemInfo(w http.ResponseWriter, _ *http.Request) {
	settings := s.store.Settings()

	writeJSON(w, http.StatusOK, map[string]any{
		"chipId":            mockChipID,
		"freeHeap":          mockFreeHeap,
		"version":           s.version,
		"firmwareUrl":       "",
		"firmwareVersion":   s.version,
		"isUpdateAvailable": false,
		"uptime":            int(time.Since(s.startTime).Seconds()),
		"deep_sleep_active": settings.Power.SleepMode == "DEEP_SLEEP",
	})
}

// handleSystemCommand executes a simulated device command. The mock
// acknowledges known commands without side effects; unknown commands are a
// client error and leave state unchanged.
func (s *Server) handleSystemCommand(w http.ResponseWriter, r *http.Request) {
	var req SystemCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	switch req.Command {
	case "reboot":
		s.logger.Info("simulated system reboot requested")
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "System reboot initiated",
		})
	case "cancel_sleep":
		s.logger.Info("simulated sleep cancellation requested")
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Sleep canceled",
		})
	default:
		writeBadRequest(w, "unknown command: "+req.Command)
	}
}

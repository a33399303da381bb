package api

import (
	"encoding/json"
	"net/http"

	"github.com/openepaper/epaper-mock/internal/state"
)

// handleGetSettings returns the full settings tree.
func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

// handleUpdateSettings applies a partial settings update.
//
// The merge is shallow at the domain level: a present domain object fully
// replaces the stored one, absent domains are untouched. Nested keys are
// never merged individually, so a partial display object drops the display
// fields it omits.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch state.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	s.store.UpdateSettings(patch)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

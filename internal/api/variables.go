package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetVariableRequest is the body of POST /variables.
type SetVariableRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// handleGetVariables returns the full variable mapping.
func (s *Server) handleGetVariables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Variables())
}

// handleGetVariablesFormatted returns the variable mapping with display
// formatting applied. No formatting rules exist yet, so this is currently an
// alias of the raw read kept as a stable extension point for firmware parity.
func (s *Server) handleGetVariablesFormatted(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Variables())
}

// handleSetVariable sets a single variable and notifies all live observers.
// REST callers have no observer identity, so the update is broadcast without
// exclusion.
func (s *Server) handleSetVariable(w http.ResponseWriter, r *http.Request) {
	var req SetVariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name field is required")
		return
	}

	s.store.SetVariable(req.Name, req.Value)

	s.hub.Broadcast(wsVariableUpdate{
		Type:  WSTypeVariableUpdate,
		Name:  req.Name,
		Value: req.Value,
	}, "")
	s.mirrorVariable(req.Name, req.Value, "rest")

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleDeleteVariable removes a single variable. Deleting an absent
// variable is a no-op.
func (s *Server) handleDeleteVariable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.store.DeleteVariable(name)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleClearVariables removes all variables.
func (s *Server) handleClearVariables(w http.ResponseWriter, _ *http.Request) {
	s.store.ClearVariables()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

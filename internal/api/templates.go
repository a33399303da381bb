package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openepaper/epaper-mock/internal/render"
	"github.com/openepaper/epaper-mock/internal/state"
)

// handleListTemplates returns all templates in insertion order.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Templates())
}

// handleGetTemplate returns a single template by name.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tpl, err := s.store.Template(name)
	if err != nil {
		if errors.Is(err, state.ErrTemplateNotFound) {
			writeNotFound(w, "template not found")
			return
		}
		writeInternalError(w, "failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, tpl)
}

// handleUpsertTemplate creates or replaces a template by name and notifies
// all live observers.
func (s *Server) handleUpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl state.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if tpl.Name == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "template name is required")
		return
	}

	s.store.UpsertTemplate(tpl)

	s.hub.Broadcast(wsTemplateUpdate{
		Type:     WSTypeTemplateUpdate,
		Name:     tpl.Name,
		Template: tpl,
	}, "")

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleDeleteTemplate removes a template by name. Deleting an absent
// template is a no-op.
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.store.DeleteTemplate(name)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleGetResolvedTemplate returns the resolved content model for a
// template: all variable references substituted with current values, ready
// for a rendering target to consume.
func (s *Server) handleGetResolvedTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tpl, err := s.store.Template(name)
	if err != nil {
		if errors.Is(err, state.ErrTemplateNotFound) {
			writeNotFound(w, "template not found")
			return
		}
		writeInternalError(w, "failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, render.Resolve(tpl, s.store.Variables()))
}

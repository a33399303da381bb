package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// System info and commands
		r.Get("/system", s.handleSystemInfo)
		r.Post("/system", s.handleSystemCommand)

		// Variable endpoints
		r.Route("/variables", func(r chi.Router) {
			r.Get("/", s.handleGetVariables)
			r.Post("/", s.handleSetVariable)
			r.Delete("/", s.handleClearVariables)
			r.Get("/formatted", s.handleGetVariablesFormatted)
			r.Delete("/{name}", s.handleDeleteVariable)
		})

		// Template endpoints
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Post("/", s.handleUpsertTemplate)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetTemplate)
				r.Delete("/", s.handleDeleteTemplate)
				r.Get("/resolved", s.handleGetResolvedTemplate)
			})
		})

		// Bitmap endpoints
		r.Route("/bitmaps", func(r chi.Router) {
			r.Get("/", s.handleListBitmaps)
			r.Post("/", s.handleUploadBitmap)
			r.Get("/{filename}", s.handleGetBitmap)
			r.Delete("/{filename}", s.handleDeleteBitmap)
		})

		// Settings endpoints
		r.Get("/settings", s.handleGetSettings)
		r.Post("/settings", s.handleUpdateSettings)

		// Synthetic device status
		r.Get("/network/wifi", s.handleNetworkWifi)
		r.Get("/mqtt/status", s.handleMQTTStatus)
		r.Get("/display/status", s.handleDisplayStatus)
		r.Get("/screens", s.handleListScreens)

		// WebSocket live channel
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

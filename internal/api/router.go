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
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// WebSocket upgrade. Browsers cannot set an Authorization header
		// on the upgrade request, so auth happens via a single-use ticket
		// validated in the handler.
		r.Get("/ws", s.handleWebSocket)

		// Worker detection ingest (shared key, not user auth)
		r.Group(func(r chi.Router) {
			r.Use(s.workerKeyMiddleware)
			r.Post("/alerts", s.handleIngestAlert)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			r.Route("/cameras", func(r chi.Router) {
				r.Get("/", s.handleListCameras)
				r.Post("/", s.handleCreateCamera)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetCamera)
					r.Put("/", s.handleUpdateCamera)
					r.Delete("/", s.handleDeleteCamera)
					r.Get("/alerts", s.handleListCameraAlerts)
				})
			})

			r.Get("/alerts/recent", s.handleRecentAlerts)
			r.Get("/audit", s.handleListAudit)
			r.Get("/metrics", s.handleMetrics)
		})
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

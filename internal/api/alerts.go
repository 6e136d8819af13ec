package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skylarkhq/skylark-core/internal/alert"
	"github.com/skylarkhq/skylark-core/internal/camera"
)

// handleListCameraAlerts returns a camera's alerts, newest first,
// gated on ownership: someone else's camera 404s just like a missing
// one.
func (s *Server) handleListCameraAlerts(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	// Resolve through the gate first so an unknown camera 404s instead
	// of returning an empty list.
	if _, err := s.cameras.GetByID(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, camera.ErrCameraNotFound) {
			writeNotFound(w, "camera not found")
			return
		}
		s.logger.Error("getting camera failed", "error", err)
		writeInternalError(w, "listing alerts failed")
		return
	}

	alerts, err := s.alerts.ListByCamera(r.Context(), identity.UserID, id, queryLimit(r))
	if err != nil {
		s.logger.Error("listing camera alerts failed", "error", err)
		writeInternalError(w, "listing alerts failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// handleRecentAlerts returns the newest alerts across the caller's cameras.
func (s *Server) handleRecentAlerts(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	alerts, err := s.alerts.ListRecent(r.Context(), identity.UserID, queryLimit(r))
	if err != nil {
		s.logger.Error("listing recent alerts failed", "error", err)
		writeInternalError(w, "listing alerts failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// handleIngestAlert accepts a detection event from a worker over HTTP.
// This is the ingest path for deployments without an MQTT broker; the
// endpoint is guarded by the shared worker key, not user auth.
func (s *Server) handleIngestAlert(w http.ResponseWriter, r *http.Request) {
	if s.ingestor == nil {
		writeNotFound(w, "detection ingest not enabled")
		return
	}

	var event alert.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	stored, err := s.ingestor.Ingest(r.Context(), &event)
	if err != nil {
		if errors.Is(err, alert.ErrAlertCameraUnknown) {
			writeNotFound(w, "camera not found")
			return
		}
		writeValidationError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// maxQueryLimit caps the limit query parameter.
const maxQueryLimit = 200

// queryLimit parses the optional limit query parameter. Zero means
// "use the repository default".
func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}

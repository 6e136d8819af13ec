package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skylarkhq/skylark-core/internal/audit"
	"github.com/skylarkhq/skylark-core/internal/camera"
)

// handleListCameras returns the caller's cameras.
func (s *Server) handleListCameras(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	cameras, err := s.cameras.List(r.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("listing cameras failed", "error", err)
		writeInternalError(w, "listing cameras failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cameras": cameras,
		"count":   len(cameras),
	})
}

// handleCreateCamera creates a camera owned by the caller. The owner
// comes from the authenticated identity, never from the request body.
func (s *Server) handleCreateCamera(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())

	var in camera.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := in.Validate(); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	cam, err := s.cameras.Create(r.Context(), identity.UserID, &in)
	if err != nil {
		s.logger.Error("creating camera failed", "error", err)
		writeInternalError(w, "creating camera failed")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		ActorID:    identity.UserID,
		Action:     audit.ActionCreate,
		EntityType: "camera",
		EntityID:   cam.ID,
		Detail:     map[string]any{"name": cam.Name},
	})

	writeJSON(w, http.StatusCreated, cam)
}

// handleGetCamera returns one of the caller's cameras. A camera owned
// by someone else is indistinguishable from a missing one.
func (s *Server) handleGetCamera(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	cam, err := s.cameras.GetByID(r.Context(), identity.UserID, id)
	if err != nil {
		if errors.Is(err, camera.ErrCameraNotFound) {
			writeNotFound(w, "camera not found")
			return
		}
		s.logger.Error("getting camera failed", "error", err)
		writeInternalError(w, "getting camera failed")
		return
	}

	writeJSON(w, http.StatusOK, cam)
}

// handleUpdateCamera updates one of the caller's cameras.
func (s *Server) handleUpdateCamera(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var in camera.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := in.Validate(); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	cam, err := s.cameras.Update(r.Context(), identity.UserID, id, &in)
	if err != nil {
		if errors.Is(err, camera.ErrCameraNotFound) {
			writeNotFound(w, "camera not found")
			return
		}
		s.logger.Error("updating camera failed", "error", err)
		writeInternalError(w, "updating camera failed")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		ActorID:    identity.UserID,
		Action:     audit.ActionUpdate,
		EntityType: "camera",
		EntityID:   cam.ID,
	})

	writeJSON(w, http.StatusOK, cam)
}

// handleDeleteCamera deletes one of the caller's cameras.
func (s *Server) handleDeleteCamera(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.cameras.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, camera.ErrCameraNotFound) {
			writeNotFound(w, "camera not found")
			return
		}
		s.logger.Error("deleting camera failed", "error", err)
		writeInternalError(w, "deleting camera failed")
		return
	}

	s.recordAudit(r.Context(), &audit.Entry{
		ActorID:    identity.UserID,
		Action:     audit.ActionDelete,
		EntityType: "camera",
		EntityID:   id,
	})

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

package api

import "net/http"

// handleMetrics returns operational counters scoped to the caller.
// Camera and alert counts cover only resources the caller owns.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "missing token")
		return
	}

	cameraCount, err := s.cameras.Count(r.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("failed to count cameras", "error", err)
		writeInternalError(w, "failed to collect metrics")
		return
	}

	alertCount, err := s.alerts.CountForOwner(r.Context(), identity.UserID)
	if err != nil {
		s.logger.Error("failed to count alerts", "error", err)
		writeInternalError(w, "failed to collect metrics")
		return
	}

	metrics := map[string]any{
		"cameras":         cameraCount,
		"alerts":          alertCount,
		"ws_clients":      s.hub.ClientCount(),
		"ws_clients_mine": s.hub.ClientCountForUser(identity.UserID),
	}
	if s.metrics != nil {
		metrics["metrics_connected"] = s.metrics.IsConnected()
	}

	if s.users != nil {
		userCount, err := s.users.Count(r.Context())
		if err != nil {
			s.logger.Error("failed to count users", "error", err)
			writeInternalError(w, "failed to collect metrics")
			return
		}
		metrics["users"] = userCount
	}

	writeJSON(w, http.StatusOK, metrics)
}

package server

import (
	"encoding/json"
	"net/http"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// handleStats returns the stat catalog.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	catalog := s.runner.Registry().List()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats": catalog,
		"count": len(catalog),
		"token": s.runner.Workspace().Token(),
	})
}

// handleRun executes one stat and returns its result. A failed
// computation is still a 200: the error travels inside the result.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "missing id parameter")
		return
	}

	result := s.runner.Run(r.Context(), id)
	s.log.Info().
		Str("stat", id).
		Bool("ok", result.OK()).
		Int64("durationMs", result.DurationMs).
		Int("events", len(result.Events)).
		Msg("stat run completed")
	s.writeJSON(w, http.StatusOK, result)
}

// handleToken selects the token all subsequent runs operate on.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, map[string]string{"token": s.runner.Workspace().Token()})
	case http.MethodPost:
		addr := r.URL.Query().Get("address")
		if addr == "" {
			s.writeError(w, http.StatusBadRequest, "missing address parameter")
			return
		}
		s.runner.Workspace().SelectToken(addr)
		s.log.Info().Str("token", addr).Msg("token selected")
		s.writeJSON(w, http.StatusOK, map[string]string{"token": addr})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSession returns the timeline of the active or most recent
// session.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	tracker := s.runner.Tracker()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": tracker.SessionID(),
		"statId":    tracker.StatID(),
		"active":    tracker.Active(),
		"events":    tracker.Events(),
	})
}

// handleHealth reports process liveness and basic engine state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"stats":   s.runner.Registry().Len(),
		"clients": s.hub.ClientCount(),
		"token":   s.runner.Workspace().Token(),
	})
}

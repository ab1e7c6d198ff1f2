// Package api provides HTTP handlers for check-in session endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lisahealth/checkin/internal/engine"
	"github.com/lisahealth/checkin/internal/models"
)

// createSessionRequest is the body for POST /sessions.
type createSessionRequest struct {
	Profile models.UserProfile `json:"profile"`
}

// createSessionResponse is the result payload for POST /sessions.
type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

// respondRequest is the body for POST /sessions/{id}/responses.
type respondRequest struct {
	Text string `json:"text"`
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.createSessionHandler: processing create request")

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.createSessionHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	eng, err := engine.New(req.Profile)
	if err != nil {
		slog.Warn("Server.createSessionHandler: profile validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	greeting := eng.StartSession()
	s.sessions[id] = &sessionEntry{engine: eng}
	s.mu.Unlock()

	slog.Info("Server.createSessionHandler: session created", "sessionID", id, "displayName", req.Profile.DisplayName)
	writeJSONResponse(w, http.StatusCreated, models.Success(createSessionResponse{
		SessionID: id,
		Greeting:  greeting,
	}))
}

func (s *Server) respondHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	id := r.PathValue("id")
	slog.Debug("Server.respondHandler: processing response", "sessionID", id)

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.respondHandler: failed to decode JSON", "error", err, "sessionID", id)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	s.mu.Lock()
	entry, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		slog.Warn("Server.respondHandler: session not found", "sessionID", id)
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}

	resp := entry.engine.ProcessResponse(req.Text)

	// Archive the transcript once, the first time the session completes.
	var toPersist *models.SessionRecord
	if resp.Finished && !entry.persisted {
		entry.persisted = true
		rec := models.SessionRecord{
			ID:          id,
			DisplayName: entry.engine.Profile().DisplayName,
			StartedAt:   entry.engine.StartedAt(),
			CompletedAt: resp.Summary.CompletedAt,
			Answers:     entry.engine.Transcript(),
			Summary:     resp.Summary,
		}
		toPersist = &rec
	}
	s.mu.Unlock()

	if toPersist != nil {
		if err := s.store.SaveSessionRecord(*toPersist); err != nil {
			// The response is still served; archival failure is logged, not fatal.
			slog.Error("Server.respondHandler: failed to persist session record", "error", err, "sessionID", id)
		} else {
			slog.Info("Server.respondHandler: session record persisted", "sessionID", id)
		}
	}

	writeJSONResponse(w, http.StatusOK, models.Success(resp))
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	slog.Debug("Server.stateHandler: processing state request", "sessionID", id)

	s.mu.Lock()
	entry, ok := s.sessions[id]
	var state models.EngineState
	if ok {
		state = entry.engine.CurrentState()
	}
	s.mu.Unlock()

	if !ok {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(state))
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	slog.Debug("Server.resetHandler: processing reset request", "sessionID", id)

	s.mu.Lock()
	entry, ok := s.sessions[id]
	var greeting string
	if ok {
		entry.engine.Reset()
		greeting = entry.engine.StartSession()
		entry.persisted = false
	}
	s.mu.Unlock()

	if !ok {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	slog.Info("Server.resetHandler: session reset", "sessionID", id)
	writeJSONResponse(w, http.StatusOK, models.Success(createSessionResponse{
		SessionID: id,
		Greeting:  greeting,
	}))
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	slog.Debug("Server.summaryHandler: processing summary request", "sessionID", id)

	s.mu.Lock()
	entry, ok := s.sessions[id]
	var finished bool
	var summary models.SessionSummary
	if ok {
		finished = entry.engine.State() == engine.StateFinished
		if finished {
			summary = entry.engine.Summary()
		}
	}
	s.mu.Unlock()

	if !ok {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	if !finished {
		writeJSONResponse(w, http.StatusConflict, models.Error("Session not finished"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(summary))
}

func (s *Server) recordsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.recordsHandler: processing records request")

	records, err := s.store.ListSessionRecords()
	if err != nil {
		slog.Error("Server.recordsHandler: failed to list session records", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list session records"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(records))
}

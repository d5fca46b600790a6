package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZaguanLabs/framelai"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type selectionRequest struct {
	Selected bool `json:"selected"`
}

type translateRequest struct {
	Target string `json:"target"`
}

type translateResponse struct {
	Result *framelai.TranslateResult `json:"result"`
	State  framelai.Snapshot         `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": framelai.Version,
	})
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Frames())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, framelai.SupportedLanguages)
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.session.Toggle(id, req.Selected); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.translateTimeout)
	defer cancel()

	result, err := s.session.Translate(ctx, req.Target)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Result: result,
		State:  s.session.Snapshot(),
	})
}

// writeError maps session errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *framelai.ValidationError
		failure       *framelai.TranslationFailure
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, framelai.ErrFrameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, framelai.ErrStaleResult):
		status = http.StatusConflict
	case errors.Is(err, framelai.ErrSessionClosed):
		status = http.StatusServiceUnavailable
	case errors.As(err, &failure):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

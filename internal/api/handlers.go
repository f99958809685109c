package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
	"github.com/abdellahaitdahmou/full-store/internal/importer"
)

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req domain.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, importer.MsgURLRequired)
		return
	}
	if req.URL == "" {
		s.respondWithError(w, http.StatusBadRequest, importer.MsgURLRequired)
		return
	}
	if u, err := url.ParseRequestURI(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		s.respondWithError(w, http.StatusBadRequest, importer.MsgFetchFailed)
		return
	}

	result, err := s.pipeline.Extract(r.Context(), req.URL)
	if err != nil {
		s.respondWithPipelineError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req domain.CategorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, importer.MsgTitleRequired)
		return
	}
	if req.Title == "" && req.Description == "" {
		s.respondWithError(w, http.StatusBadRequest, importer.MsgTitleRequired)
		return
	}

	category, err := s.pipeline.Categorize(r.Context(), req.Title, req.Description)
	if err != nil {
		s.respondWithPipelineError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]string{"category": category})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  s.config.GeminiModel,
	})
}

// --- Helper Functions ---

// respondWithPipelineError maps pipeline error kinds onto HTTP statuses.
// Only the short localized message leaves the process; the cause stays in
// the logs.
func (s *Server) respondWithPipelineError(w http.ResponseWriter, err error) {
	var perr *importer.PipelineError
	if !errors.As(err, &perr) {
		s.logger.Error("unclassified pipeline error", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, importer.MsgUnexpected)
		return
	}

	status := http.StatusInternalServerError
	switch perr.Kind {
	case importer.KindInvalidInput, importer.KindUpstreamFetch:
		status = http.StatusBadRequest
	case importer.KindModelInvocation, importer.KindResponseParse:
		// 500 Internal Server Error
	}
	s.respondWithError(w, status, perr.Message)
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/career-compass/internal/compass"
	"github.com/sells-group/career-compass/internal/model"
)

// User-facing messages. Most carry Chinese and English.
const (
	errRateLimited = "rate_limit_exceeded"

	msgInvalidJSON    = "Invalid JSON payload."
	msgMajorRequired  = "专业/研究领域是必填项 (Major/Field of Study is required)."
	msgInternal       = "服务器内部发生错误 (An internal server error occurred)."
	msgRateLimited    = "请求过于频繁，请稍后再试 (Too many requests, please try again later.)"
	serviceName       = "career-compass"
	maxRequestBodyLen = 1 << 20
)

// analyzeRequest is the POST /analyze body.
type analyzeRequest struct {
	Major      string `json:"major"`
	Interests  string `json:"interests"`
	ResumeText string `json:"resumeText"`
	Language   string `json:"language"`
}

// analyzeResponse is the POST /analyze success body.
type analyzeResponse struct {
	Analysis string               `json:"analysis"`
	Sources  []model.EvidenceItem `json:"sources"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req *analyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyLen)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
		respondError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), model.Profile{
		Major:      req.Major,
		Interests:  req.Interests,
		ResumeText: req.ResumeText,
		Language:   req.Language,
	})
	if err != nil {
		if errors.Is(err, compass.ErrMajorRequired) {
			respondError(w, http.StatusBadRequest, msgMajorRequired)
			return
		}
		var genErr *compass.GenerationError
		if errors.As(err, &genErr) {
			zap.L().Error("analysis generation failed", zap.String("provider", genErr.Provider), zap.Error(err))
		} else {
			zap.L().Error("analysis failed", zap.Error(err))
		}
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	sources := report.CitedSources
	if sources == nil {
		sources = []model.EvidenceItem{}
	}
	respondJSON(w, http.StatusOK, analyzeResponse{
		Analysis: report.Narrative,
		Sources:  sources,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"status":  "running",
		"version": s.version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// Package chi exposes the HTTP API: search and export over the corpus,
// plus health and Prometheus metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maktaba-cloud/matndex/internal/domain"
	"github.com/maktaba-cloud/matndex/internal/domain/search/criteria"
	healthuc "github.com/maktaba-cloud/matndex/internal/usecase/health"
	searchuc "github.com/maktaba-cloud/matndex/internal/usecase/search"
)

// ErrorCode identifies an API error category.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeEmptyQuery          ErrorCode = "empty_query"
	CodeInvalidQuery        ErrorCode = "invalid_query"
	CodeEngineUnavailable   ErrorCode = "engine_unavailable"
	CodeEngineError         ErrorCode = "engine_error"
	CodeMetadataUnavailable ErrorCode = "metadata_unavailable"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes API requests to the use case services.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, CodeEmptyQuery),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		sentinelHandler(domain.ErrEngineUnavailable, http.StatusBadGateway, CodeEngineUnavailable),
		sentinelHandler(domain.ErrEngineError, http.StatusBadGateway, CodeEngineError),
		sentinelHandler(domain.ErrMetadataUnavailable, http.StatusServiceUnavailable, CodeMetadataUnavailable),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/search", s.Search)
	r.Post("/v1/search/export", s.Export)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchRequest is the JSON body for POST /v1/search and /v1/search/export.
type SearchRequest struct {
	Query    string   `json:"query"`
	Exact    bool     `json:"exact"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Filters  *Filters `json:"filters,omitempty"`
}

// Filters narrows a search by catalog metadata. Absent fields apply no
// filtering; death_min/death_max must come as a pair.
type Filters struct {
	Genres    []string `json:"genres,omitempty"`
	AuthorIDs []int    `json:"author_ids,omitempty"`
	DeathMin  *int     `json:"death_min,omitempty"`
	DeathMax  *int     `json:"death_max,omitempty"`
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, ok := s.decodeParams(w, r)
	if !ok {
		return
	}

	page, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Export handles POST /v1/search/export: the same pipeline with page pinned
// to 1 and the larger export cap.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	params, ok := s.decodeParams(w, r)
	if !ok {
		return
	}

	page, err := s.search.Export(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) decodeParams(w http.ResponseWriter, r *http.Request) (searchuc.Params, bool) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return searchuc.Params{}, false
	}

	crit, err := criteriaFromFilters(req.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return searchuc.Params{}, false
	}

	return searchuc.Params{
		Query:    req.Query,
		Exact:    req.Exact,
		Page:     req.Page,
		PageSize: req.PageSize,
		Criteria: crit,
	}, true
}

func criteriaFromFilters(f *Filters) (criteria.Criteria, error) {
	if f == nil {
		return criteria.Criteria{}, nil
	}

	var dr *criteria.DeathRange
	switch {
	case f.DeathMin != nil && f.DeathMax != nil:
		dr = &criteria.DeathRange{Min: *f.DeathMin, Max: *f.DeathMax}
	case f.DeathMin != nil || f.DeathMax != nil:
		return criteria.Criteria{}, errors.New("death_min and death_max must be provided together")
	}

	return criteria.New(f.Genres, f.AuthorIDs, dr)
}

// HealthResponse is the JSON body for GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Texts   int               `json:"texts"`
	Authors int               `json:"authors"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Texts:   report.Texts,
		Authors: report.Authors,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrInvalidQuery,
		domain.ErrEngineUnavailable,
		domain.ErrEngineError,
		domain.ErrMetadataUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

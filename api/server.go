// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"print-cost/adapters/warehouse"
	"print-cost/core/engine"
	"print-cost/core/format"
	"print-cost/core/types"
	"print-cost/internal/errors"
)

// Server is the API server
type Server struct {
	estimator *engine.Estimator
	catalog   *warehouse.SnapshotCache
	remote    engine.RemotePricer
	router    chi.Router
	version   string
	logger    *zap.Logger
}

// NewServer creates an API server. remote may be nil; estimates then run
// the local pricing path.
func NewServer(estimator *engine.Estimator, catalog *warehouse.SnapshotCache, remote engine.RemotePricer, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		estimator: estimator,
		catalog:   catalog,
		remote:    remote,
		version:   version,
		logger:    logger,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimate", s.handleEstimate)
		r.Post("/validate", s.handleValidate)
		r.Get("/formats", s.handleFormats)
		r.Get("/products", s.handleProducts)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Version: s.version}
	if snapshot, _, err := s.catalog.Get(); err == nil {
		resp.SnapshotID = snapshot.ID
		resp.RefreshedAt = snapshot.RefreshedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, format.List())
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	registry := s.estimator.Products()
	keys := registry.Keys()
	out := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		if entry, ok := registry.Get(key); ok {
			out = append(out, entry)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	var spec types.ProductJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		s.writeError(w, requestID, start, http.StatusBadRequest, &ErrorBody{
			Kind:    string(errors.TypeParsing),
			Message: "request body is not a valid job specification",
		})
		return
	}

	snapshot, policy, err := s.catalog.Get()
	if err != nil {
		s.writeError(w, requestID, start, http.StatusInternalServerError, &ErrorBody{
			Kind:    string(errors.TypeOf(err)),
			Message: err.Error(),
		})
		return
	}

	var result *types.EstimationResult
	if s.remote != nil {
		result, err = s.estimator.EstimateRemote(r.Context(), s.remote, &spec, snapshot)
	} else {
		result, err = s.estimator.Estimate(&spec, snapshot, policy)
	}
	if err != nil {
		body := &ErrorBody{
			Kind:    string(errors.TypeOf(err)),
			Message: err.Error(),
			Fields:  engine.FieldErrors(err),
		}
		s.writeError(w, requestID, start, statusFor(err), body)
		return
	}

	s.logger.Info("estimate served",
		zap.String("request_id", requestID),
		zap.String("product", spec.ProductType),
		zap.Int("quantity", spec.Quantity),
		zap.String("total", result.Total.String()))

	writeJSON(w, http.StatusOK, Envelope{
		RequestID:  requestID,
		DurationMS: time.Since(start).Milliseconds(),
		Result:     result,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	var spec types.ProductJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		s.writeError(w, requestID, start, http.StatusBadRequest, &ErrorBody{
			Kind:    string(errors.TypeParsing),
			Message: "request body is not a valid job specification",
		})
		return
	}

	snapshot, _, err := s.catalog.Get()
	if err != nil {
		snapshot = nil // validation still runs the snapshot-free rules
	}

	fieldErrs := s.estimator.Validate(&spec, snapshot)
	env := Envelope{
		RequestID:  requestID,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if !fieldErrs.IsValid() {
		env.Error = &ErrorBody{
			Kind:    string(errors.TypeValidation),
			Message: "job specification is invalid",
			Fields:  fieldErrs,
		}
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, start time.Time, status int, body *ErrorBody) {
	s.logger.Warn("request failed",
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.String("kind", body.Kind))
	writeJSON(w, status, Envelope{
		RequestID:  requestID,
		DurationMS: time.Since(start).Milliseconds(),
		Error:      body,
	})
}

// statusFor maps error kinds to HTTP status codes: spec problems the
// caller can fix are 422, remote pricing outages are 502, the rest is 500.
func statusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.TypeValidation, errors.TypeUnknownFormat, errors.TypeInfeasibleFormat,
		errors.TypePaperNotFound, errors.TypeDensityNotAvailable:
		return http.StatusUnprocessableEntity
	case errors.TypeRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

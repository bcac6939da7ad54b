// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eweb-intent-gateway/internal/common/config"
	"eweb-intent-gateway/internal/common/errors"
	"eweb-intent-gateway/internal/common/logger"
	"eweb-intent-gateway/internal/models"
)

const maxRequestBodyBytes = 1 << 20

// QueryHandler is the piece of the core the HTTP layer drives: one call
// per inbound request, everything else is routing plumbing.
type QueryHandler interface {
	Handle(ctx context.Context, query, supplierOverride string) (*models.ResponseEnvelope, error)
}

type Server struct {
	router       *chi.Mux
	cfg          *config.Config
	queryHandler QueryHandler
	validator    *RequestValidator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewServer(cfg *config.Config, handler QueryHandler, log logger.Logger) (*Server, error) {
	validator, err := NewRequestValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:       chi.NewRouter(),
		cfg:          cfg,
		queryHandler: handler,
		validator:    validator,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(requestIDMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.Post("/intent", s.handleIntent)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Router exposes the configured handler tree for the HTTP server and for
// in-process tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		s.errorHandler.WriteHTTPError(w, requestID, errors.NewInvalidRequestError("request body unreadable or too large"))
		return
	}

	if err := s.validator.ValidateIntentRequest(body); err != nil {
		s.errorHandler.WriteHTTPError(w, requestID, err)
		return
	}

	var req models.IntentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorHandler.WriteHTTPError(w, requestID, errors.NewInvalidRequestError("request body is not valid JSON"))
		return
	}

	envelope, err := s.queryHandler.Handle(r.Context(), req.Query, req.SupplierID)
	if err != nil {
		s.errorHandler.WriteHTTPError(w, requestID, err)
		return
	}

	s.logger.Info("intent request served", map[string]interface{}{
		"requestId": requestID,
		"intent":    string(envelope.Intent),
	})
	s.writeJSON(w, http.StatusOK, envelope)
}

// handleHealth reports process liveness only; it never touches the
// resolver or the upstream.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// ==========================================
// REQUEST ID MIDDLEWARE
// ==========================================

type requestIDKey struct{}

// requestIDMiddleware honors an inbound X-Request-ID and mints one
// otherwise, so every log line and error response can be correlated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

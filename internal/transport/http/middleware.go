package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
)

type contextKey string

// ContextKeyBody holds the decoded and validated request body.
const ContextKeyBody contextKey = "body"

// Middleware struct holds dependencies for middleware functions
type Middleware struct {
	Logger     hclog.Logger
	Validator  *domain.Validation
	corsConfig *CORSConfig
	stdLogger  *log.Logger
}

// CORSConfig holds configuration for CORS middleware
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	MaxAge           int  // Cache preflight requests
	AllowCredentials bool // Allow credentials like cookies
}

func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:           86400, // 24 hours
		AllowCredentials: true,
	}
}

// NewMiddleware creates a new Middleware instance
func NewMiddleware(logger hclog.Logger, validator *domain.Validation, corsConfig *CORSConfig) *Middleware {
	if corsConfig == nil {
		corsConfig = DefaultCORSConfig()
	}
	return &Middleware{
		Logger:     logger,
		Validator:  validator,
		corsConfig: corsConfig,
		stdLogger:  logger.StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Error}),
	}
}

// CORSMiddleware answers preflight requests and sets the CORS headers for allowed origins.
func (m *Middleware) CORSMiddleware(next http.Handler) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowedOrigins(m.corsConfig.AllowedOrigins),
		handlers.AllowedMethods(m.corsConfig.AllowedMethods),
		handlers.AllowedHeaders(m.corsConfig.AllowedHeaders),
		handlers.MaxAge(m.corsConfig.MaxAge),
	}
	if m.corsConfig.AllowCredentials {
		opts = append(opts, handlers.AllowCredentials())
	}
	return handlers.CORS(opts...)(next)
}

// RecoveryMiddleware turns a panicking handler into a 500 and logs it.
func (m *Middleware) RecoveryMiddleware(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(m.stdLogger))(next)
}

// CompressMiddleware gzips responses for clients that accept it.
func (m *Middleware) CompressMiddleware(next http.Handler) http.Handler {
	return handlers.CompressHandler(next)
}

// ContentTypeMiddleware sets the Content-Type header to application/json
func (m *Middleware) ContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs the incoming requests and responses
func (m *Middleware) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		m.Logger.Info("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		// Add the request ID to the response header
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		m.Logger.Info("Completed request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
			"duration", time.Since(start),
		)
	})
}

// ValidateBody decodes the request body into a T, checks its struct tags
// and adds it to the request context under ContextKeyBody.
func ValidateBody[T any](m *Middleware) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := new(T)
			if err := json.NewDecoder(r.Body).Decode(body); err != nil {
				m.Logger.Error("Error decoding request body", "error", err)
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
				return
			}

			if errs := m.Validator.Validate(body); len(errs) > 0 {
				m.Logger.Debug("Request body failed validation", "errors", errs.Messages())
				writeJSON(w, http.StatusUnprocessableEntity, ValidationError{Messages: errs.Messages()})
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyBody, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bodyFrom returns the body stored by ValidateBody.
func bodyFrom[T any](r *http.Request) (*T, bool) {
	body, ok := r.Context().Value(ContextKeyBody).(*T)
	return body, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

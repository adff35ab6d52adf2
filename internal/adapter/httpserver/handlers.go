package httpserver

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/otel-greeter/internal/adapter/observability"
	"github.com/fairyhunter13/otel-greeter/internal/config"
	"github.com/fairyhunter13/otel-greeter/internal/domain"
	"github.com/fairyhunter13/otel-greeter/internal/service/ratelimiter"
)

// LogEmitter emits trace-correlated log records.
type LogEmitter interface {
	Emit(ctx context.Context, message string, attrs observability.Attrs, opts ...observability.EmitOption)
}

// Server aggregates handlers dependencies.
type Server struct {
	Cfg     config.Config
	Greeter domain.Greeter
	Log     LogEmitter
	// Limiter, when set, replaces the in-process /api rate limiter.
	Limiter ratelimiter.Limiter
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, greeter domain.Greeter, log LogEmitter) *Server {
	return &Server{Cfg: cfg, Greeter: greeter, Log: log}
}

// HandlerFunc is an HTTP handler that can fail. A returned error is a
// handler fault and is answered by the error responder.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to http.HandlerFunc.
func (s *Server) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.respondFault(w, r, err)
		}
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

type usernameResponse struct {
	Username string `json:"username"`
}

type greetingResponse struct {
	Message string `json:"message"`
}

// HealthHandler answers GET /health.
func (s *Server) HealthHandler() HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		s.Log.Emit(r.Context(), "Healthcheck called", observability.Attrs{"endpoint": "/health"})
		writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
		return nil
	}
}

// UsernameHandler answers GET /api/username.
func (s *Server) UsernameHandler() HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		s.Log.Emit(r.Context(), "Fetching username", observability.Attrs{"endpoint": "/api/username"})
		writeJSON(w, http.StatusOK, usernameResponse{Username: s.Greeter.Username(r.Context())})
		return nil
	}
}

// GreetHandler answers GET /api/greet/{name}.
func (s *Server) GreetHandler() HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		name := pathParam(r, "name")
		s.Log.Emit(r.Context(), "Greeting user", observability.Attrs{"endpoint": "/api/greet", "user": name})
		writeJSON(w, http.StatusOK, greetingResponse{Message: s.Greeter.Greet(r.Context(), name)})
		return nil
	}
}

// NotFoundHandler answers any request that matched no route. It usually runs
// outside a traced route, so the record is forced into its own span.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Log.Emit(r.Context(), "Invalid endpoint requested", observability.Attrs{
			"endpoint": r.URL.RequestURI(),
			"method":   r.Method,
		}, observability.WithForceSpan())
		writeError(w, r, domain.ErrNotFound)
	}
}

// pathParam returns the URL-decoded value of a chi path parameter. chi
// matches on the raw path when the request carried escaped characters, so
// the value is decoded exactly once in that case. A routing path rewritten
// by middleware (trailing slash stripped) is already decoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fairyhunter13/otel-greeter/internal/adapter/observability"
	"github.com/fairyhunter13/otel-greeter/internal/domain"
	obsctx "github.com/fairyhunter13/otel-greeter/internal/observability"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeError maps err to a status code and writes the fixed-shape error
// body. Error details never reach the client.
func writeError(w http.ResponseWriter, _ *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		code = http.StatusTooManyRequests
	}
	writeJSON(w, code, errorResponse{Error: http.StatusText(code)})
}

// respondFault is the error responder for handler faults: a forced-span
// record carrying the fault message, an operator diagnostic, and a 500.
func (s *Server) respondFault(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Emit(r.Context(), "Server error", observability.Attrs{
		"endpoint": r.URL.RequestURI(),
		"method":   r.Method,
		"error":    err.Error(),
	}, observability.WithForceSpan())
	obsctx.TracedLoggerFromContext(r.Context()).Error("unexpected error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", obsctx.RequestIDFromContext(r.Context())),
		slog.Any("error", err))
	writeError(w, r, domain.ErrInternal)
}

// RateLimited answers requests rejected by the rate limiter.
func RateLimited(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, domain.ErrRateLimited)
}

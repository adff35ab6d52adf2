// Package app assembles the HTTP handler from the server and its middleware.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	httpserver "github.com/fairyhunter13/otel-greeter/internal/adapter/httpserver"
	"github.com/fairyhunter13/otel-greeter/internal/adapter/observability"
	"github.com/fairyhunter13/otel-greeter/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
//
// Business routes run behind the server-span middleware, so their records are
// correlated with the request span. The 404 handler and panic recovery sit
// outside it and force a span of their own. A trailing slash is ignored when
// matching routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server, tp trace.TracerProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.RequestID())
	r.Use(srv.Recoverer())
	r.Use(middleware.StripSlashes)
	r.Use(httpserver.TimeoutMiddleware(cfg.HTTPHandlerTimeout))
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Group(func(tr chi.Router) {
		tr.Use(httpserver.TraceMiddleware(tp))
		tr.Get("/health", srv.Handle(srv.HealthHandler()))

		tr.Group(func(ar chi.Router) {
			switch {
			case srv.Limiter != nil:
				ar.Use(httpserver.RateLimit(srv.Limiter))
			case cfg.RateLimitPerMin > 0:
				ar.Use(httprate.Limit(cfg.RateLimitPerMin, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(httpserver.RateLimited),
				))
			}
			ar.Get("/api/username", srv.Handle(srv.UsernameHandler()))
			ar.Get("/api/greet/{name}", srv.Handle(srv.GreetHandler()))
		})
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Unknown methods on known paths are treated like unknown paths.
	r.NotFound(srv.NotFoundHandler())
	r.MethodNotAllowed(srv.NotFoundHandler())

	return httpserver.SecurityHeaders(r)
}

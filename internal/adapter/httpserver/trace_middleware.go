package httpserver

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/fairyhunter13/otel-greeter/internal/adapter/observability"
)

// TraceMiddleware starts a server span for each request, continuing an
// inbound W3C trace context when present. Handlers behind it see the span
// as the active span of the request context.
func TraceMiddleware(tp trace.TracerProvider) func(http.Handler) http.Handler {
	otelMW := otelhttp.NewMiddleware("http.server",
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithPropagators(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		)),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + observability.RouteLabel(r)
		}),
	)
	return func(next http.Handler) http.Handler {
		return otelMW(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trace.SpanFromContext(r.Context()).SetAttributes(
				attribute.String("http.route", observability.RouteLabel(r)),
				attribute.String("http.request_id", r.Header.Get("X-Request-Id")),
			)
			next.ServeHTTP(w, r)
		}))
	}
}

package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("football-db/internal/interfaces/httpapi")

// startHandlerSpan opens a child of the otelhttp server span. Requests that otelhttp filtered
// out (health checks) have no parent and get the noop span from ctx.
func startHandlerSpan(r *http.Request, op string) (context.Context, trace.Span) {
	ctx := r.Context()
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return apiTracer.Start(ctx, handlerSpanName(op), trace.WithAttributes(handlerSpanAttributes(r)...))
}

func handlerSpanName(op string) string {
	if op == "" {
		op = "unknown"
	}
	return "httpapi.Handler." + op
}

func handlerSpanAttributes(r *http.Request) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("http.route", r.Pattern)}
	if entity := r.URL.Query().Get("entity"); entity != "" {
		attrs = append(attrs, attribute.String("import.entity", entity))
	}
	if pack := r.URL.Query().Get("pack"); pack != "" {
		attrs = append(attrs, attribute.String("import.pack", pack))
	}
	return attrs
}

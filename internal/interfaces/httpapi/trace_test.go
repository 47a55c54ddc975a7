package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestHandlerSpanName(t *testing.T) {
	if got := handlerSpanName("ImportCSV"); got != "httpapi.Handler.ImportCSV" {
		t.Fatalf("expected httpapi.Handler.ImportCSV, got %q", got)
	}
	if got := handlerSpanName(""); got != "httpapi.Handler.unknown" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestHandlerSpanAttributes_IncludeImportQuery(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/import/csv?entity=clubs&pack=euro2024", nil)
	req.Pattern = "POST /v1/import/csv"

	got := map[attribute.Key]string{}
	for _, kv := range handlerSpanAttributes(req) {
		got[kv.Key] = kv.Value.AsString()
	}
	if got["http.route"] != "POST /v1/import/csv" || got["import.entity"] != "clubs" || got["import.pack"] != "euro2024" {
		t.Fatalf("unexpected attributes: %v", got)
	}
}

func TestStartHandlerSpan_WithoutParentIsNoop(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil).WithContext(context.Background())
	ctx, span := startHandlerSpan(req, "Healthz")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span without a parent")
	}
	if ctx != req.Context() {
		t.Fatalf("expected request context to be returned unchanged")
	}
}

package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/readyz", want: false},
		{path: "/v1/import/csv", want: true},
		{path: "/v1/admin/import/run", want: true},
		{path: "/", want: true},
	}

	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q): expected %v, got %v", tt.path, tt.want, got)
		}
	}
}

func TestRequestSpanName(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/import/csv?entity=clubs", nil)
	if got := requestSpanName(req); got != "POST /v1/import/csv" {
		t.Fatalf("expected method and path, got %q", got)
	}

	req.Pattern = "POST /v1/import/csv"
	if got := requestSpanName(req); got != "POST /v1/import/csv" {
		t.Fatalf("expected route pattern, got %q", got)
	}
}

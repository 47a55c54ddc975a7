package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mouxlas21/football-db/internal/config"
	"github.com/mouxlas21/football-db/internal/platform/logging"
)

func TestNewPprofServer(t *testing.T) {
	t.Parallel()

	if srv := NewPprofServer(config.Config{PprofEnabled: false}, logging.NewNop()); srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}

	srv := NewPprofServer(config.Config{PprofEnabled: true, PprofAddr: ":6061"}, logging.NewNop())
	if srv == nil || srv.Addr != ":6061" {
		t.Fatalf("expected server on :6061, got %+v", srv)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pprof index status 200, got %d", rec.Code)
	}
}

package importapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/platform/resilience"
	"github.com/mouxlas21/football-db/internal/usecase"
)

func writePlanFile(t *testing.T, body string) usecase.PlanItem {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clubs.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return usecase.PlanItem{Phase: 50, Entity: usecase.EntityClub, Path: path}
}

func TestClient_SubmitUploadsMultipart(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/import/csv" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("entity"); got != "club" {
			t.Errorf("expected entity=club, got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("read form file: %v", err)
			return
		}
		defer file.Close()
		raw, _ := io.ReadAll(file)
		if header.Filename != "clubs.csv" || !strings.HasPrefix(string(raw), "name,short_name") {
			t.Errorf("unexpected upload %s: %q", header.Filename, raw)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"apiVersion":"2.0","data":{"entity":"club","inserted":2,"updated":1,"skipped":1,"errors":["Row 3: boom"]}}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Timeout: 5 * time.Second})
	result, err := client.Submit(context.Background(), server.URL+"/", writePlanFile(t, "name,short_name\nAjax,AJA\n"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Inserted != 2 || result.Updated != 1 || result.Skipped != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"apiVersion":"2.0","error":{"code":400,"message":"no importer for entity \"lineup\"","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{MaxRetries: 3, Backoff: time.Millisecond})
	_, err := client.Submit(context.Background(), server.URL, writePlanFile(t, "a\n1\n"))
	if err == nil || !strings.Contains(err.Error(), "no importer") {
		t.Fatalf("expected envelope message in error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"apiVersion":"2.0","data":{"entity":"club","inserted":1,"skipped":0,"errors":[]}}`)
	}))
	defer server.Close()

	var logs bytes.Buffer
	client := NewClient(ClientConfig{MaxRetries: 2, Backoff: time.Millisecond, Logger: logging.NewWriter(&logs, logging.LevelDebug)})
	result, err := client.Submit(context.Background(), server.URL, writePlanFile(t, "name\nAjax\n"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Inserted != 1 || calls.Load() != 3 {
		t.Fatalf("expected success on third call, got %+v after %d calls", result, calls.Load())
	}
	if n := strings.Count(logs.String(), `"msg":"retrying import request"`); n != 2 {
		t.Fatalf("expected 2 retry debug entries, got %d in %s", n, logs.String())
	}
}

func TestClient_BreakerOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var logs bytes.Buffer
	client := NewClient(ClientConfig{
		Backoff: time.Millisecond,
		Logger:  logging.NewWriter(&logs, logging.LevelDebug),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	})
	item := writePlanFile(t, "name\nAjax\n")
	for i := 0; i < 2; i++ {
		if _, err := client.Submit(context.Background(), server.URL, item); !errors.Is(err, errImportTransient) {
			t.Fatalf("expected transient failure, got %v", err)
		}
	}
	if _, err := client.Submit(context.Background(), server.URL, item); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open breaker to reject, got %v", err)
	}
	if out := logs.String(); !strings.Contains(out, `"msg":"import circuit breaker state changed"`) || !strings.Contains(out, `"to":"open"`) {
		t.Fatalf("expected breaker transition logged, got %s", out)
	}
}

func TestClient_RejectsBadInput(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if _, err := client.Submit(context.Background(), "ftp://example.com", writePlanFile(t, "a\n")); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
	missing := usecase.PlanItem{Entity: usecase.EntityClub, Path: filepath.Join(t.TempDir(), "gone.csv")}
	if _, err := client.Submit(context.Background(), "http://localhost:1", missing); err == nil {
		t.Fatalf("expected missing file error")
	}
}

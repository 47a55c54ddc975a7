package httpapi

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/mouxlas21/football-db/internal/infrastructure/repository/memory"
	"github.com/mouxlas21/football-db/internal/platform/cache"
	"github.com/mouxlas21/football-db/internal/platform/id"
	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/usecase"
)

type testAPI struct {
	router  http.Handler
	dataDir string
}

func newTestAPI(t *testing.T, cfg RouterConfig) testAPI {
	t.Helper()

	logger := logging.NewNop()
	store := memory.NewStore()
	importService := usecase.NewImportService(store, usecase.DefaultImportRegistry(nil), logger)
	dataDir := t.TempDir()
	orchestrator := usecase.NewImportOrchestratorService(
		usecase.NewImportPlanner(usecase.ImportPlannerConfig{}, logger),
		usecase.NewLocalSubmitter(importService),
		id.Static("run-1"),
		usecase.ImportOrchestratorConfig{DataDir: dataDir},
		logger,
	)
	handler := NewHandler(
		importService,
		orchestrator,
		usecase.NewTeamSyncService(store, logger),
		cache.NewStore[usecase.Plan](time.Minute),
		HandlerConfig{},
		logger,
	)
	return testAPI{router: NewRouter(handler, cfg, logger), dataDir: dataDir}
}

func (a testAPI) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func uploadRequest(t *testing.T, entity, csv string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", entity+".csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = io.WriteString(part, csv)
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/import/csv?entity="+entity, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	return data
}

func errorStatusOf(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	status, _ := errObj["status"].(string)
	return status
}

func TestHandler_ImportCSV(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	code, body := api.do(t, uploadRequest(t, "clubs", "name,short_name\nAjax,AJA\nPSV,PSV\n,\n"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, body)
	}
	data := dataOf(t, body)
	if data["entity"] != "club" || data["inserted"] != float64(2) || data["skipped"] != float64(1) {
		t.Fatalf("unexpected result %v", data)
	}

	code, body = api.do(t, uploadRequest(t, "clubs", "name\n"))
	if code != http.StatusOK || dataOf(t, body)["message"] != "No data" {
		t.Fatalf("expected No data message, got %d %v", code, body)
	}
}

func TestHandler_ImportCSVRejectsBadRequests(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	code, body := api.do(t, uploadRequest(t, "widgets", "name\nx\n"))
	if code != http.StatusBadRequest || errorStatusOf(body) != "INVALID_ARGUMENT" {
		t.Fatalf("expected 400 for unknown entity, got %d %v", code, body)
	}

	code, _ = api.do(t, uploadRequest(t, "lineups", "fixture_id\n1\n"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for entity without importer, got %d", code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/import/csv?entity=clubs", strings.NewReader("name\nAjax\n"))
	req.Header.Set("Content-Type", "text/csv")
	if code, _ := api.do(t, req); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing multipart file, got %d", code)
	}

	req = uploadRequest(t, "", "name\nAjax\n")
	if code, _ := api.do(t, req); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing entity, got %d", code)
	}
}

func TestHandler_ListEntities(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	code, body := api.do(t, httptest.NewRequest(http.MethodGet, "/v1/import/entities", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	items, ok := body["data"].([]any)
	if !ok || len(items) != len(usecase.AllEntityKinds()) {
		t.Fatalf("expected %d catalogue entries, got %v", len(usecase.AllEntityKinds()), body["data"])
	}

	importable := map[string]bool{}
	for _, raw := range items {
		item := raw.(map[string]any)
		importable[item["entity"].(string)] = item["importable"].(bool)
	}
	if !importable["club"] || importable["lineup"] {
		t.Fatalf("unexpected importable flags %v", importable)
	}
}

func TestHandler_RunImportAndPlan(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	if err := os.WriteFile(filepath.Join(api.dataDir, "countries.csv"), []byte("name,fifa_code\nNetherlands,NED\n"), 0o644); err != nil {
		t.Fatalf("write countries: %v", err)
	}
	if err := os.WriteFile(filepath.Join(api.dataDir, "clubs.csv"), []byte("name,country\nAjax,Netherlands\n"), 0o644); err != nil {
		t.Fatalf("write clubs: %v", err)
	}

	code, body := api.do(t, httptest.NewRequest(http.MethodGet, "/v1/admin/import/plan", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200 plan, got %d %v", code, body)
	}
	plan := dataOf(t, body)
	items := plan["items"].([]any)
	if len(items) != 2 || items[0].(map[string]any)["entity"] != "country" {
		t.Fatalf("expected countries first, got %v", items)
	}
	if items[1].(map[string]any)["rows"] != float64(1) {
		t.Fatalf("expected counted rows, got %v", items[1])
	}

	code, body = api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/import/run", strings.NewReader(`{"dry_run":false}`)))
	if code != http.StatusOK {
		t.Fatalf("expected 200 run, got %d %v", code, body)
	}
	summary := dataOf(t, body)
	if summary["ok"] != true || summary["found"] != float64(2) || summary["run_id"] != "run-1" {
		t.Fatalf("unexpected summary %v", summary)
	}
	results := summary["results"].([]any)
	if len(results) != 2 || results[1].(map[string]any)["path"] != "clubs.csv" {
		t.Fatalf("unexpected results %v", results)
	}

	code, body = api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/teams/sync", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200 sync, got %d %v", code, body)
	}
	sync := dataOf(t, body)
	if sync["club_teams_created"] != float64(1) || sync["national_teams_created"] != float64(1) {
		t.Fatalf("unexpected sync result %v", sync)
	}
}

func TestHandler_RunImportRejectsBadBodies(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	for _, payload := range []string{`{"unknown":1}`, `{"base_url":"not a url"}`, `{"pack":"../etc"}`, `{`} {
		code, body := api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/import/run", strings.NewReader(payload)))
		if code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d %v", payload, code, body)
		}
	}

	code, body := api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/import/run", nil))
	if code != http.StatusOK {
		t.Fatalf("expected empty body to use defaults, got %d", code)
	}
	summary := dataOf(t, body)
	if summary["ok"] != false || !strings.HasPrefix(summary["message"].(string), "No CSVs found") {
		t.Fatalf("unexpected summary for empty data dir %v", summary)
	}
}

func TestHandler_ImportRoutesAreRateLimited(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{RateLimitRPS: 0.001, RateLimitBurst: 1})

	if code, _ := api.do(t, uploadRequest(t, "clubs", "name\nAjax\n")); code != http.StatusOK {
		t.Fatalf("expected first upload to pass, got %d", code)
	}
	code, body := api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/teams/sync", nil))
	if code != http.StatusTooManyRequests || errorStatusOf(body) != "RESOURCE_EXHAUSTED" {
		t.Fatalf("expected shared bucket to reject, got %d %v", code, body)
	}
	if code, _ := api.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil)); code != http.StatusOK {
		t.Fatalf("expected healthz to stay unlimited, got %d", code)
	}
}

func TestHandler_RunImportConfinesPathsToDataRoot(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	sub := filepath.Join(api.dataDir, "season-2024")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "countries.csv"), []byte("name\nNetherlands\n"), 0o644); err != nil {
		t.Fatalf("write countries: %v", err)
	}
	outside := t.TempDir()

	for _, payload := range []string{
		`{"data_dir":"../"}`,
		`{"data_dir":"season-2024/../../etc"}`,
		`{"data_dir":"` + filepath.ToSlash(outside) + `"}`,
		`{"manifest_path":"../import_manifest.json"}`,
		`{"manifest_path":"/etc/passwd"}`,
	} {
		code, body := api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/import/run", strings.NewReader(payload)))
		if code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d %v", payload, code, body)
		}
	}

	for _, dir := range []string{"season-2024", filepath.ToSlash(sub)} {
		code, body := api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/import/run", strings.NewReader(`{"data_dir":"`+dir+`"}`)))
		if code != http.StatusOK {
			t.Fatalf("expected 200 for data_dir %s, got %d %v", dir, code, body)
		}
		if summary := dataOf(t, body); summary["found"] != float64(1) {
			t.Fatalf("expected the sub directory planned, got %v", summary)
		}
	}
}

func TestHandler_RunImportInvalidatesCachedPlan(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, RouterConfig{})

	if err := os.WriteFile(filepath.Join(api.dataDir, "countries.csv"), []byte("name\nNetherlands\n"), 0o644); err != nil {
		t.Fatalf("write countries: %v", err)
	}
	planFound := func() any {
		t.Helper()
		code, body := api.do(t, httptest.NewRequest(http.MethodGet, "/v1/admin/import/plan", nil))
		if code != http.StatusOK {
			t.Fatalf("expected 200 plan, got %d %v", code, body)
		}
		return dataOf(t, body)["found"]
	}

	if found := planFound(); found != float64(1) {
		t.Fatalf("expected 1 planned file, got %v", found)
	}
	if err := os.WriteFile(filepath.Join(api.dataDir, "clubs.csv"), []byte("name\nAjax\n"), 0o644); err != nil {
		t.Fatalf("write clubs: %v", err)
	}
	if found := planFound(); found != float64(1) {
		t.Fatalf("expected the cached plan before a run, got %v", found)
	}

	if code, body := api.do(t, httptest.NewRequest(http.MethodPost, "/v1/admin/import/run", nil)); code != http.StatusOK {
		t.Fatalf("expected 200 run, got %d %v", code, body)
	}
	if found := planFound(); found != float64(2) {
		t.Fatalf("expected a fresh plan after the run, got %v", found)
	}
}

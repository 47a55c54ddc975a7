package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	color.NoColor = true

	dataDir := t.TempDir()
	t.Setenv("APP_ENV", "dev")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("IMPORT_SUBMIT_MODE", "http")
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("IMPORT_MANIFEST", "")
	return dataDir
}

func writeCSV(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestRun_LocalImportsInPhaseOrder(t *testing.T) {
	dataDir := setupEnv(t)
	writeCSV(t, dataDir, "clubs.csv", "name,country\nAjax,Netherlands\n")
	writeCSV(t, dataDir, "countries.csv", "name,fifa_code\nNetherlands,NED\n")

	out, err := execute(t, "run", "--local", "--data", dataDir)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	country := strings.Index(out, "countries.csv inserted=1")
	club := strings.Index(out, "clubs.csv inserted=1")
	if country < 0 || club < 0 || country > club {
		t.Fatalf("expected countries before clubs in output, got:\n%s", out)
	}
}

func TestRun_DryRunPrintsPlanOnly(t *testing.T) {
	dataDir := setupEnv(t)
	writeCSV(t, dataDir, "countries.csv", "name\nNetherlands\n")

	out, err := execute(t, "run", "--dry-run", "--data", dataDir)
	if err != nil {
		t.Fatalf("dry run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "countries.csv") || strings.Contains(out, "inserted=") {
		t.Fatalf("expected plan without results, got:\n%s", out)
	}
}

func TestRun_EmptyDirectoryExitsWithTwo(t *testing.T) {
	dataDir := setupEnv(t)

	out, err := execute(t, "run", "--dry-run", "--data", dataDir)
	if code := exitCode(err); code != exitRunFailed {
		t.Fatalf("expected exit code %d, got %d\n%s", exitRunFailed, code, out)
	}
	if !strings.Contains(out, "No CSVs found") {
		t.Fatalf("expected no csv message, got:\n%s", out)
	}
}

func TestRun_FileFailureExitsWithTwo(t *testing.T) {
	dataDir := setupEnv(t)
	writeCSV(t, dataDir, "lineups.csv", "fixture_id,player\n1,Someone\n")

	out, err := execute(t, "run", "--local", "--data", dataDir)
	if code := exitCode(err); code != exitRunFailed {
		t.Fatalf("expected exit code %d, got %d\n%s", exitRunFailed, code, out)
	}
	if !strings.Contains(out, "FAIL") {
		t.Fatalf("expected failed file line, got:\n%s", out)
	}
}

func TestPlan_ShowsRowsAndUnrecognized(t *testing.T) {
	dataDir := setupEnv(t)
	writeCSV(t, dataDir, "countries.csv", "name\nNetherlands\nBelgium\n")
	writeCSV(t, dataDir, "notes.csv", "text\nhello\n")

	out, err := execute(t, "plan", "--data", dataDir)
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	if !strings.Contains(out, "countries.csv") || !strings.Contains(out, "skipped") || !strings.Contains(out, "notes.csv") {
		t.Fatalf("unexpected plan output:\n%s", out)
	}
}

func TestSyncTeams_PrintsCounts(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "sync-teams")
	if err != nil {
		t.Fatalf("sync-teams: %v\n%s", err, out)
	}
	if !strings.Contains(out, "NATIONAL") && !strings.Contains(out, "national") {
		t.Fatalf("expected team sync table, got:\n%s", out)
	}
}

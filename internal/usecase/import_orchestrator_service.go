package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mouxlas21/football-db/internal/platform/id"
	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/platform/resilience"
)

const manifestFileName = "import_manifest.json"

// FileSubmitter feeds one planned file into an import entry point.
type FileSubmitter interface {
	Submit(ctx context.Context, baseURL string, item PlanItem) (ImportResult, error)
}

// LocalSubmitter imports files in process through the batch runner.
type LocalSubmitter struct {
	service *ImportService
}

func NewLocalSubmitter(service *ImportService) *LocalSubmitter {
	return &LocalSubmitter{service: service}
}

func (s *LocalSubmitter) Submit(ctx context.Context, _ string, item PlanItem) (ImportResult, error) {
	f, err := os.Open(item.Path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open %s: %w", item.Path, err)
	}
	defer f.Close()
	return s.service.ImportCSV(ctx, item.Entity.String(), f)
}

type ImportOrchestratorConfig struct {
	DataDir      string
	ManifestPath string
	BaseURL      string
}

type RunInput struct {
	DataDir      string `json:"data_dir"`
	Pack         string `json:"pack" validate:"omitempty,excludesall=/\\"`
	BaseURL      string `json:"base_url" validate:"omitempty,url"`
	ManifestPath string `json:"manifest_path"`
	DryRun       bool   `json:"dry_run"`
}

// FileResult is the outcome of one submitted file.
type FileResult struct {
	Entity   EntityKind `json:"entity"`
	Path     string     `json:"path"`
	OK       bool       `json:"ok"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   []string   `json:"errors,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// RunSummary reports a whole run. OK is the conjunction of every file outcome, and false
// when nothing was found to import.
type RunSummary struct {
	RunID      string       `json:"run_id"`
	OK         bool         `json:"ok"`
	DryRun     bool         `json:"dry_run"`
	BaseURL    string       `json:"base_url"`
	Message    string       `json:"message,omitempty"`
	Root       string       `json:"root"`
	Plan       []PlanItem   `json:"plan"`
	Results    []FileResult `json:"results"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

type CompactFileResult struct {
	Entity EntityKind `json:"entity"`
	OK     bool       `json:"ok"`
	Path   string     `json:"path"`
}

// CompactSummary is the admin view of a run: file names only.
type CompactSummary struct {
	RunID   string              `json:"run_id"`
	OK      bool                `json:"ok"`
	BaseURL string              `json:"base_url"`
	Message string              `json:"message,omitempty"`
	Found   int                 `json:"found"`
	Results []CompactFileResult `json:"results"`
}

func (s RunSummary) Compact() CompactSummary {
	out := CompactSummary{
		RunID:   s.RunID,
		OK:      s.OK,
		BaseURL: s.BaseURL,
		Message: s.Message,
		Found:   len(s.Plan),
		Results: make([]CompactFileResult, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		out.Results = append(out.Results, CompactFileResult{Entity: r.Entity, OK: r.OK, Path: filepath.Base(r.Path)})
	}
	return out
}

// ImportOrchestratorService plans a data directory and submits its files in phase order.
type ImportOrchestratorService struct {
	planner   *ImportPlanner
	submitter FileSubmitter
	ids       id.Generator
	flights   resilience.SingleFlight[RunSummary]
	cfg       ImportOrchestratorConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewImportOrchestratorService(
	planner *ImportPlanner,
	submitter FileSubmitter,
	ids id.Generator,
	cfg ImportOrchestratorConfig,
	logger *logging.Logger,
) *ImportOrchestratorService {
	if logger == nil {
		logger = logging.Default()
	}
	if planner == nil {
		planner = NewImportPlanner(ImportPlannerConfig{}, logger)
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "/app/data"
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "http://localhost:8080"
	}

	return &ImportOrchestratorService{
		planner:   planner,
		submitter: submitter,
		ids:       ids,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Resolve fills the defaults of a run input and loads its manifest. The manifest base URL
// only applies when the input names none.
func (s *ImportOrchestratorService) Resolve(input RunInput) (RunInput, Manifest, error) {
	if strings.TrimSpace(input.DataDir) == "" {
		input.DataDir = s.cfg.DataDir
	}
	if strings.TrimSpace(input.ManifestPath) == "" {
		input.ManifestPath = s.cfg.ManifestPath
	}
	if strings.TrimSpace(input.ManifestPath) == "" {
		input.ManifestPath = filepath.Join(input.DataDir, manifestFileName)
	}

	manifest, err := LoadManifest(input.ManifestPath)
	if err != nil {
		return RunInput{}, Manifest{}, err
	}
	if strings.TrimSpace(input.BaseURL) == "" {
		input.BaseURL = manifest.BaseURL
	}
	if strings.TrimSpace(input.BaseURL) == "" {
		input.BaseURL = s.cfg.BaseURL
	}
	input.BaseURL = strings.TrimRight(input.BaseURL, "/")
	return input, manifest, nil
}

// Confine resolves a caller supplied data_dir and manifest_path against the configured data
// root. Relative paths are taken from the root; a path that leaves it is ErrInvalidInput.
func (s *ImportOrchestratorService) Confine(input RunInput) (RunInput, error) {
	root, err := filepath.Abs(s.cfg.DataDir)
	if err != nil {
		return RunInput{}, fmt.Errorf("resolve data root: %w", err)
	}
	if input.DataDir, err = underRoot(root, input.DataDir); err != nil {
		return RunInput{}, err
	}
	if input.ManifestPath, err = underRoot(root, input.ManifestPath); err != nil {
		return RunInput{}, err
	}
	return input, nil
}

func underRoot(root, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	rel := path
	if filepath.IsAbs(path) {
		var err error
		if rel, err = filepath.Rel(root, path); err != nil {
			return "", fmt.Errorf("%w: %s is outside the data root", ErrInvalidInput, path)
		}
	}
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s is outside the data root", ErrInvalidInput, path)
	}
	return filepath.Join(root, rel), nil
}

// Plan resolves the input and returns its plan with row counts.
func (s *ImportOrchestratorService) Plan(ctx context.Context, input RunInput) (Plan, error) {
	input, manifest, err := s.Resolve(input)
	if err != nil {
		return Plan{}, err
	}
	return s.planner.Plan(ctx, PlanInput{
		DataDir:   input.DataDir,
		Pack:      input.Pack,
		Manifest:  manifest,
		CountRows: true,
	})
}

// Run imports every planned file in order. File failures are recorded and the run carries
// on; only a bad manifest, an unreadable data directory or cancellation end it early.
// Concurrent runs over the same root share one execution.
func (s *ImportOrchestratorService) Run(ctx context.Context, input RunInput) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportOrchestratorService.Run")
	defer span.End()

	input, manifest, err := s.Resolve(input)
	if err != nil {
		return RunSummary{}, err
	}

	key := fmt.Sprintf("%s|%t", PlanRoot(input.DataDir, input.Pack), input.DryRun)
	summary, err, shared := s.flights.Do(key, func() (RunSummary, error) {
		return s.run(ctx, input, manifest)
	})
	if shared {
		s.logger.InfoContext(ctx, "joined in-flight import run", "run_id", summary.RunID)
	}
	return summary, err
}

// Running reports whether a run over the given root is in progress.
func (s *ImportOrchestratorService) Running(dataDir, pack string, dryRun bool) bool {
	if strings.TrimSpace(dataDir) == "" {
		dataDir = s.cfg.DataDir
	}
	return s.flights.InFlight(fmt.Sprintf("%s|%t", PlanRoot(dataDir, pack), dryRun))
}

func (s *ImportOrchestratorService) run(ctx context.Context, input RunInput, manifest Manifest) (RunSummary, error) {
	runID, err := s.ids.NewID()
	if err != nil {
		return RunSummary{}, err
	}
	logger := s.logger.With("run_id", runID)

	plan, err := s.planner.Plan(ctx, PlanInput{DataDir: input.DataDir, Pack: input.Pack, Manifest: manifest})
	if err != nil {
		return RunSummary{}, err
	}

	summary := RunSummary{
		RunID:     runID,
		DryRun:    input.DryRun,
		BaseURL:   input.BaseURL,
		Root:      plan.Root,
		Plan:      plan.Items,
		Results:   []FileResult{},
		StartedAt: s.now().UTC(),
	}

	switch {
	case plan.Found == 0:
		summary.Message = fmt.Sprintf("No CSVs found under %s", plan.Root)
		logger.WarnContext(ctx, "import run found no csv files", "root", plan.Root)
		summary.FinishedAt = s.now().UTC()
		return summary, nil
	case len(plan.Items) == 0:
		summary.Message = fmt.Sprintf("Found %d CSVs but none matched known entities. Check file names or manifest.", plan.Found)
		logger.WarnContext(ctx, "import run matched no csv files", "root", plan.Root, "found", plan.Found)
		summary.FinishedAt = s.now().UTC()
		return summary, nil
	}

	summary.OK = true
	if input.DryRun {
		summary.FinishedAt = s.now().UTC()
		return summary, nil
	}
	if s.submitter == nil {
		return RunSummary{}, fmt.Errorf("%w: no file submitter configured", ErrDependencyUnavailable)
	}

	logger.InfoContext(ctx, "import run started", "root", plan.Root, "files", len(plan.Items), "base_url", input.BaseURL)
	for _, item := range plan.Items {
		if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}

		result, err := s.submitter.Submit(ctx, input.BaseURL, item)
		file := FileResult{Entity: item.Entity, Path: item.Path, OK: err == nil}
		if err != nil {
			file.Error = err.Error()
			logger.WarnContext(ctx, "import file failed", "entity", item.Entity.String(), "path", item.Path, "error", err)
		} else {
			file.Inserted = result.Inserted
			file.Updated = result.Updated
			file.Skipped = result.Skipped
			file.Errors = result.Errors
			logger.InfoContext(ctx, "import file done",
				"entity", item.Entity.String(),
				"path", item.Path,
				"inserted", result.Inserted,
				"skipped", result.Skipped,
			)
		}
		summary.OK = summary.OK && file.OK
		summary.Results = append(summary.Results, file)
	}

	summary.FinishedAt = s.now().UTC()
	logger.InfoContext(ctx, "import run finished", "ok", summary.OK, "files", len(summary.Results))
	return summary, nil
}

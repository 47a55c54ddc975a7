package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/mouxlas21/football-db/internal/platform/csvfile"
	"github.com/mouxlas21/football-db/internal/platform/logging"
)

// Manifest optionally pins files to entities and names the import endpoint.
type Manifest struct {
	BaseURL   string             `json:"base_url" validate:"omitempty,url"`
	Overrides []ManifestOverride `json:"overrides" validate:"dive"`
}

type ManifestOverride struct {
	File   string `json:"file" validate:"required"`
	Entity string `json:"entity" validate:"required"`
}

var manifestValidator = validator.New()

// LoadManifest reads a manifest file. A missing file is an empty manifest.
func LoadManifest(path string) (Manifest, error) {
	if strings.TrimSpace(path) == "" {
		return Manifest{}, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := sonic.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("%w: decode manifest %s: %v", ErrInvalidInput, path, err)
	}
	if err := manifestValidator.Struct(manifest); err != nil {
		return Manifest{}, fmt.Errorf("%w: manifest %s: %v", ErrInvalidInput, path, err)
	}
	return manifest, nil
}

// PlanItem is one file scheduled for import.
type PlanItem struct {
	Phase  int        `json:"phase"`
	Entity EntityKind `json:"entity"`
	Path   string     `json:"path"`
	Rows   *int       `json:"rows,omitempty"`
}

// Plan is the phase-ordered list of classified files under Root.
type Plan struct {
	Root         string     `json:"root"`
	Found        int        `json:"found"`
	Items        []PlanItem `json:"items"`
	Unrecognized []string   `json:"unrecognized"`
}

type PlanInput struct {
	DataDir   string
	Pack      string
	Manifest  Manifest
	CountRows bool
}

type ImportPlannerConfig struct {
	CountWorkers int
}

// ImportPlanner turns a data directory into an ordered import plan.
type ImportPlanner struct {
	cfg    ImportPlannerConfig
	logger *logging.Logger
}

func NewImportPlanner(cfg ImportPlannerConfig, logger *logging.Logger) *ImportPlanner {
	if cfg.CountWorkers <= 0 {
		cfg.CountWorkers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportPlanner{cfg: cfg, logger: logger}
}

// PlanRoot is the directory a plan scans: the data dir, or its packs/<pack> subdirectory.
func PlanRoot(dataDir, pack string) string {
	if pack = strings.TrimSpace(pack); pack != "" {
		return filepath.Join(dataDir, "packs", pack)
	}
	return dataDir
}

// Discover lists every *.csv file below root, sorted. A missing root has no files.
func (p *ImportPlanner) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover csv files under %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Classify assigns each file an entity: a manifest override first, then the filename
// patterns. Files matching neither are returned separately. Items come back ordered by
// phase, then path.
func (p *ImportPlanner) Classify(ctx context.Context, dataDir string, files []string, manifest Manifest) ([]PlanItem, []string, error) {
	overrides, err := manifestOverrides(manifest)
	if err != nil {
		return nil, nil, err
	}

	items := make([]PlanItem, 0, len(files))
	var unrecognized []string
	for _, path := range files {
		kind, ok := overrideFor(overrides, dataDir, path)
		if !ok {
			kind, ok = InferEntityKind(path)
		}
		if !ok {
			p.logger.InfoContext(ctx, "skip unrecognized csv", "path", path)
			unrecognized = append(unrecognized, path)
			continue
		}
		items = append(items, PlanItem{Phase: kind.Phase(), Entity: kind, Path: path})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Phase != items[j].Phase {
			return items[i].Phase < items[j].Phase
		}
		return items[i].Path < items[j].Path
	})
	return items, unrecognized, nil
}

func manifestOverrides(manifest Manifest) (map[string]EntityKind, error) {
	out := make(map[string]EntityKind, len(manifest.Overrides))
	for _, override := range manifest.Overrides {
		kind, err := ParseEntityKind(override.Entity)
		if err != nil {
			return nil, fmt.Errorf("manifest override %s: %w", override.File, err)
		}
		out[overrideKey(override.File)] = kind
	}
	return out, nil
}

func overrideKey(path string) string {
	return filepath.ToSlash(filepath.Clean(strings.TrimSpace(path)))
}

// overrideFor matches a file by its cleaned path or by its path relative to the data root.
func overrideFor(overrides map[string]EntityKind, dataDir, path string) (EntityKind, bool) {
	if len(overrides) == 0 {
		return "", false
	}
	if kind, ok := overrides[overrideKey(path)]; ok {
		return kind, true
	}
	if rel, err := filepath.Rel(dataDir, path); err == nil {
		if kind, ok := overrides[overrideKey(rel)]; ok {
			return kind, true
		}
	}
	return "", false
}

// Plan discovers and classifies the files of a data directory or pack.
func (p *ImportPlanner) Plan(ctx context.Context, input PlanInput) (Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportPlanner.Plan")
	defer span.End()

	root := PlanRoot(input.DataDir, input.Pack)
	files, err := p.Discover(root)
	if err != nil {
		return Plan{}, err
	}
	items, unrecognized, err := p.Classify(ctx, input.DataDir, files, input.Manifest)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Root: root, Found: len(files), Items: items, Unrecognized: unrecognized}
	if input.CountRows {
		if err := p.CountRows(ctx, plan.Items); err != nil {
			return Plan{}, err
		}
	}
	return plan, nil
}

// CountRows fills in the data row count of every item, reading files concurrently.
// Unreadable files are logged and left without a count.
func (p *ImportPlanner) CountRows(ctx context.Context, items []PlanItem) error {
	if len(items) == 0 {
		return nil
	}

	pool, err := ants.NewPool(p.cfg.CountWorkers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range items {
		item := &items[i]
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			n, err := csvfile.CountRows(item.Path)
			if err != nil {
				p.logger.WarnContext(ctx, "count csv rows failed", "path", item.Path, "error", err)
				return
			}
			item.Rows = &n
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	return nil
}

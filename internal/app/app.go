package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/external/importapi"
	"github.com/mouxlas21/football-db/internal/config"
	"github.com/mouxlas21/football-db/internal/infrastructure/repository/memory"
	"github.com/mouxlas21/football-db/internal/infrastructure/repository/postgres"
	"github.com/mouxlas21/football-db/internal/interfaces/httpapi"
	"github.com/mouxlas21/football-db/internal/platform/cache"
	"github.com/mouxlas21/football-db/internal/platform/id"
	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/platform/resilience"
	"github.com/mouxlas21/football-db/internal/usecase"
)

// App is the wired service graph shared by the API server and the importer CLI.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB

	Imports      *usecase.ImportService
	Orchestrator *usecase.ImportOrchestratorService
	TeamSync     *usecase.TeamSyncService
	PlanCache    *cache.Store[usecase.Plan]
}

// New builds the store selected by STORE_DRIVER and every service on top of it.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		store usecase.ImportStore
		db    *sqlx.DB
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store = memory.NewStore()
		logger.Warn("using in-memory store; imported data is lost on exit")
	default:
		opened, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened
		store = postgres.NewStore(db, logger.Named("postgres"))
	}

	imports := usecase.NewImportService(store, usecase.DefaultImportRegistry(nil), logger.Named("import"))
	a := &App{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		Imports:   imports,
		TeamSync:  usecase.NewTeamSyncService(store, logger.Named("team_sync")),
		PlanCache: cache.NewStore[usecase.Plan](cfg.ImportPlanCacheTTL),
	}
	a.Orchestrator = NewOrchestrator(cfg, imports, logger)

	return a, nil
}

// NewOrchestrator builds the directory import runner. In http mode files are posted to
// IMPORT_BASE_URL; in local mode they go straight to imports, which must then be non-nil.
func NewOrchestrator(cfg config.Config, imports *usecase.ImportService, logger *logging.Logger) *usecase.ImportOrchestratorService {
	if logger == nil {
		logger = logging.Default()
	}

	var submitter usecase.FileSubmitter
	if cfg.ImportSubmitMode == config.SubmitModeLocal && imports != nil {
		submitter = usecase.NewLocalSubmitter(imports)
	} else {
		submitter = importapi.NewClient(importapi.ClientConfig{
			Timeout:    cfg.ImportTimeout,
			MaxRetries: cfg.ImportMaxRetries,
			Backoff:    cfg.ImportRetryBackoff,
			Logger:     logger.Named("importapi"),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ImportCircuitEnabled,
				FailureThreshold: cfg.ImportCircuitFailureCount,
				OpenTimeout:      cfg.ImportCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ImportCircuitHalfOpenMaxReq,
			},
		})
	}

	planner := usecase.NewImportPlanner(usecase.ImportPlannerConfig{CountWorkers: cfg.ImportCountWorkers}, logger.Named("planner"))
	return usecase.NewImportOrchestratorService(
		planner,
		submitter,
		id.NewUUIDGenerator(),
		usecase.ImportOrchestratorConfig{
			DataDir:      cfg.DataDir,
			ManifestPath: cfg.ImportManifest,
			BaseURL:      cfg.ImportBaseURL,
		},
		logger.Named("orchestrator"),
	)
}

// Router returns the instrumented HTTP handler tree.
func (a *App) Router() http.Handler {
	handler := httpapi.NewHandler(
		a.Imports,
		a.Orchestrator,
		a.TeamSync,
		a.PlanCache,
		httpapi.HandlerConfig{MaxUploadBytes: a.cfg.ImportMaxUploadBytes},
		a.logger.Named("httpapi"),
	)
	return httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		RateLimitRPS:       a.cfg.RateLimitRPS,
		RateLimitBurst:     a.cfg.RateLimitBurst,
	}, a.logger)
}

func (a *App) HTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Router(),
		ReadTimeout:       a.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.cfg.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

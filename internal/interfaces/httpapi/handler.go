package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/mouxlas21/football-db/internal/platform/cache"
	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/usecase"
)

const defaultMaxUploadBytes int64 = 32 << 20

type HandlerConfig struct {
	MaxUploadBytes int64
}

type Handler struct {
	importService *usecase.ImportService
	orchestrator  *usecase.ImportOrchestratorService
	teamSync      *usecase.TeamSyncService
	planCache     *cache.Store[usecase.Plan]
	cfg           HandlerConfig
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	importService *usecase.ImportService,
	orchestrator *usecase.ImportOrchestratorService,
	teamSync *usecase.TeamSyncService,
	planCache *cache.Store[usecase.Plan],
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	return &Handler{
		importService: importService,
		orchestrator:  orchestrator,
		teamSync:      teamSync,
		planCache:     planCache,
		cfg:           cfg,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ImportCSV imports the multipart "file" upload as the entity named by ?entity=.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ImportCSV")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: import service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	entity := strings.TrimSpace(r.URL.Query().Get("entity"))
	if entity == "" {
		writeError(ctx, w, fmt.Errorf("%w: entity is required", usecase.ErrInvalidInput))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read upload: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer file.Close()

	result, err := h.importService.ImportCSV(ctx, entity, file)
	if err != nil {
		h.logger.WarnContext(ctx, "import csv failed", "entity", entity, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListEntities")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: import service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.importService.Registry().Catalogue())
}

// RunImport runs the orchestrator and returns its compact summary. A run that recorded
// file failures still answers 200 with ok=false.
func (h *Handler) RunImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunImport")
	defer span.End()

	if h.orchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: import orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	input, err := decodeRunInput(r.Body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, input); err != nil {
		writeError(ctx, w, err)
		return
	}
	if input, err = h.orchestrator.Confine(input); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.orchestrator.Run(ctx, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "import run failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.invalidatePlans(ctx, input.Pack)
	writeSuccess(ctx, w, http.StatusOK, summary.Compact())
}

const planCachePrefix = "plan|"

func planCacheKey(pack string) string {
	return planCachePrefix + pack
}

// invalidatePlans drops the cached plans a run over pack may have made stale. A root run
// covers every pack.
func (h *Handler) invalidatePlans(ctx context.Context, pack string) {
	if h.planCache == nil {
		return
	}
	if pack = strings.TrimSpace(pack); pack == "" {
		h.planCache.DeletePrefix(ctx, planCachePrefix)
		return
	}
	h.planCache.Delete(ctx, planCacheKey(pack))
	h.planCache.Delete(ctx, planCacheKey(""))
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

func decodeRunInput(body io.Reader) (usecase.RunInput, error) {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return usecase.RunInput{}, fmt.Errorf("%w: read request: %v", usecase.ErrInvalidInput, err)
	}

	var input usecase.RunInput
	if len(bytes.TrimSpace(raw)) == 0 {
		return input, nil
	}
	if err := strictJSON.Unmarshal(raw, &input); err != nil {
		return usecase.RunInput{}, fmt.Errorf("%w: decode request: %v", usecase.ErrInvalidInput, err)
	}
	return input, nil
}

func (h *Handler) PlanImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "PlanImport")
	defer span.End()

	if h.orchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: import orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	input := usecase.RunInput{Pack: strings.TrimSpace(r.URL.Query().Get("pack"))}
	if err := h.validateRequest(ctx, input); err != nil {
		writeError(ctx, w, err)
		return
	}

	load := func(ctx context.Context) (usecase.Plan, error) {
		return h.orchestrator.Plan(ctx, input)
	}
	var (
		plan usecase.Plan
		err  error
	)
	if h.planCache != nil {
		plan, err = h.planCache.GetOrLoad(ctx, planCacheKey(input.Pack), load)
	} else {
		plan, err = load(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "plan import failed", "pack", input.Pack, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, plan)
}

func (h *Handler) SyncTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SyncTeams")
	defer span.End()

	if h.teamSync == nil {
		writeError(ctx, w, fmt.Errorf("%w: team sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.teamSync.Sync(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "team sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

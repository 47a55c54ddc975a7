package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sourcegraph/conc"

	"github.com/mouxlas21/football-db/internal/app"
	"github.com/mouxlas21/football-db/internal/config"
	"github.com/mouxlas21/football-db/internal/observability"
	"github.com/mouxlas21/football-db/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logger, shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	logger, shutdownLogs, err := observability.InitBetterStackLogger(cfg, logger)
	if err != nil {
		logger.Error("init betterstack", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	srv, err := a.HTTPServer()
	if err != nil {
		logger.Error("build http server", "error", err)
		os.Exit(1)
	}
	scheduler, err := app.NewImportScheduler(cfg.ImportSchedule, a.Orchestrator, cfg.ImportScheduleRunTimeout, logger.Named("scheduler"))
	if err != nil {
		logger.Error("build import scheduler", "error", err)
		os.Exit(1)
	}
	pprofSrv := observability.NewPprofServer(cfg, logger)

	var failed atomic.Bool
	var wg conc.WaitGroup
	wg.Go(func() {
		if !serve(ctx, "http", srv, logger) {
			failed.Store(true)
			stop()
		}
	})
	if pprofSrv != nil {
		wg.Go(func() {
			serve(ctx, "pprof", pprofSrv, logger)
		})
	}
	if scheduler != nil {
		wg.Go(func() { scheduler.Run(ctx) })
		if cfg.ImportRunOnStartup {
			wg.Go(func() { scheduler.RunOnce(ctx) })
		}
	} else {
		logger.Info("import scheduler disabled", "reason", "IMPORT_SCHEDULE empty")
	}
	wg.Wait()

	if err := a.Close(); err != nil {
		logger.Error("close app", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownLogs(flushCtx); err != nil {
		logger.Error("shutdown betterstack", "error", err)
	}
	if err := shutdownUptrace(flushCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	if failed.Load() {
		os.Exit(1)
	}
}

// serve runs srv until ctx is done and then shuts it down. It reports false when the
// listener failed on its own.
func serve(ctx context.Context, name string, srv *http.Server, logger *logging.Logger) bool {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(name+" server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(name+" server failed", "error", err)
			return false
		}
		return true
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(name+" graceful shutdown failed", "error", err)
		return false
	}
	logger.Info(name + " server stopped")
	return true
}

// Command importer drives directory imports from the command line.
//
// Usage:
//
//	importer run --data ./data --pack euro2024
//	importer run --data ./data --dry-run
//	importer plan --data ./data
//	importer sync-teams
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mouxlas21/football-db/internal/app"
	"github.com/mouxlas21/football-db/internal/config"
	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/usecase"
)

const exitRunFailed = 2

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

type runFlags struct {
	dataDir  string
	pack     string
	baseURL  string
	manifest string
	dryRun   bool
	local    bool
}

func (f runFlags) input() usecase.RunInput {
	return usecase.RunInput{
		DataDir:      f.dataDir,
		Pack:         f.pack,
		BaseURL:      f.baseURL,
		ManifestPath: f.manifest,
		DryRun:       f.dryRun,
	}
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "importer",
		Short:         "Football reference data CSV importer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	logger := func() *logging.Logger {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		return logging.NewConsole(level)
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newPlanCmd(logger))
	root.AddCommand(newSyncTeamsCmd(logger))
	return root
}

func bindDirFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVar(&f.dataDir, "data", "", "Data root directory (default $DATA_DIR)")
	cmd.Flags().StringVar(&f.pack, "pack", "", "Pack name under <data>/packs")
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "Manifest path (default <data>/import_manifest.json)")
}

func newRunCmd(newLogger func() *logging.Logger) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Import every recognised CSV under the data directory in phase order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger()
			if f.local {
				cfg.ImportSubmitMode = config.SubmitModeLocal
			}

			orchestrator, closeFn, err := buildOrchestrator(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			summary, err := orchestrator.Run(cmd.Context(), f.input())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderPlan(out, summary.Plan, false)
			if summary.DryRun {
				if len(summary.Plan) == 0 {
					renderMessage(out, summary.Message)
					return &exitError{code: exitRunFailed, msg: "nothing to import"}
				}
				return nil
			}
			renderSummary(out, summary)
			if !summary.OK {
				return &exitError{code: exitRunFailed, msg: "import run failed"}
			}
			return nil
		},
	}
	bindDirFlags(cmd, &f)
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "Import API base URL (default manifest base_url, then $IMPORT_BASE_URL)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the plan without submitting files")
	cmd.Flags().BoolVar(&f.local, "local", false, "Import in process against the configured store instead of the API")
	return cmd
}

func newPlanCmd(newLogger func() *logging.Logger) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the import plan with row counts and unrecognised files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			plan, err := app.NewOrchestrator(cfg, nil, newLogger()).Plan(cmd.Context(), f.input())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderPlan(out, plan.Items, true)
			renderUnrecognized(out, plan.Unrecognized)
			if len(plan.Items) == 0 {
				return &exitError{code: exitRunFailed, msg: fmt.Sprintf("no importable files under %s (found %d csv)", plan.Root, plan.Found)}
			}
			return nil
		},
	}
	bindDirFlags(cmd, &f)
	return cmd
}

func newSyncTeamsCmd(newLogger func() *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-teams",
		Short: "Ensure every club and country has its default team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg, newLogger())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.TeamSync.Sync(cmd.Context())
			if err != nil {
				return err
			}
			renderTeamSync(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// buildOrchestrator only opens the store when files are imported in process.
func buildOrchestrator(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.ImportOrchestratorService, func(), error) {
	if cfg.ImportSubmitMode != config.SubmitModeLocal {
		return app.NewOrchestrator(cfg, nil, logger), func() {}, nil
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a.Orchestrator, func() { _ = a.Close() }, nil
}

package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/archops-lab/dispatchboard/pkg/cli/config"
	httpctrl "github.com/archops-lab/dispatchboard/pkg/controller/http"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/service/worker"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuthn bool
	var scanInterval time.Duration
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var seedCfg config.Seed

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DISPATCHBOARD_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "no-authn",
			Usage:       "Skip authentication and run as the first seeded admin (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("DISPATCHBOARD_NO_AUTHN"),
			Destination: &noAuthn,
		},
		&cli.DurationFlag{
			Name:        "workflow-scan-interval",
			Usage:       "Interval for the background workflow context refresh (0 disables it)",
			Value:       0,
			Sources:     cli.EnvVars("DISPATCHBOARD_WORKFLOW_SCAN_INTERVAL"),
			Destination: &scanInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, seedCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Initialize Gemini client (nil when not configured)
			geminiClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if geminiClient == nil {
				logging.Default().Info("Gemini not configured, AI features fall back to degraded behavior")
			}

			uc := usecase.New(repo, usecase.WithLLM(llm.New(geminiClient)))

			// Prompt templates must exist before any AI feature runs
			if err := uc.Template.EnsureDefaults(ctx); err != nil {
				return goerr.Wrap(err, "failed to seed default prompt templates")
			}

			if seedCfg.Enabled() {
				if err := seedCfg.Apply(ctx, repo); err != nil {
					return goerr.Wrap(err, "failed to apply seed data")
				}
			}

			if noAuthn {
				logging.Default().Warn("Running in no-authn mode (development only)")
			}

			// Start workflow context refresh worker if enabled
			var refreshWorker *worker.WorkflowRefreshWorker
			if scanInterval > 0 {
				if geminiClient == nil {
					logging.Default().Warn("workflow-scan-interval set but Gemini is not configured, skipping worker")
				} else {
					refreshWorker = worker.NewWorkflowRefreshWorker(uc.Workflow, scanInterval)
					if err := refreshWorker.Start(ctx); err != nil {
						return goerr.Wrap(err, "failed to start workflow refresh worker")
					}
				}
			}

			// Create HTTP server
			httpHandler, err := httpctrl.New(uc, httpctrl.WithNoAuthn(noAuthn))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop background worker first
				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/archops-lab/dispatchboard/pkg/cli/config"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

func cmdScan() *cli.Command {
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := append(repoCfg.Flags(), geminiCfg.Flags()...)

	return &cli.Command{
		Name:  "scan",
		Usage: "Run a one-shot workflow context scan and store the result",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			geminiClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if geminiClient == nil {
				return goerr.New("scan requires a configured Gemini client")
			}

			uc := usecase.New(repo, usecase.WithLLM(llm.New(geminiClient)))
			if err := uc.Template.EnsureDefaults(ctx); err != nil {
				return goerr.Wrap(err, "failed to seed default prompt templates")
			}

			narrative, err := uc.Workflow.Scan(ctx)
			if err != nil {
				return goerr.Wrap(err, "workflow scan failed")
			}

			logging.Default().Info("Workflow context updated", "length", len(narrative))
			return nil
		},
	}
}

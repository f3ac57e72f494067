package usecase

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

//go:embed prompt/workflow_synthesis.md
var workflowSynthesisPrompt string

const projectDumpSeparator = "\n\n----------------\n\n"

type WorkflowUseCase struct {
	repo      interfaces.Repository
	llm       *llm.Client
	templates *TemplateUseCase
	now       func() time.Time
}

func NewWorkflowUseCase(repo interfaces.Repository, llmClient *llm.Client, templates *TemplateUseCase, now func() time.Time) *WorkflowUseCase {
	return &WorkflowUseCase{
		repo:      repo,
		llm:       llmClient,
		templates: templates,
		now:       now,
	}
}

// Scan rebuilds the department workflow narrative from the complete
// history of every project and stores it as the active
// WORKFLOW_CONTEXT template. The aggregate prompt is unbounded; for
// large histories it may exceed provider input limits.
// TODO: chunk the project dump once real departments outgrow a single request.
func (uc *WorkflowUseCase) Scan(ctx context.Context) (string, error) {
	if !uc.llm.Enabled() {
		return "", goerr.Wrap(llm.ErrNotConfigured, "cannot synthesize workflow context")
	}

	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list projects for workflow scan")
	}
	if len(projects) == 0 {
		return "", goerr.New("no projects available to analyze")
	}

	blocks := make([]string, 0, len(projects))
	for _, p := range projects {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Project: %s (%s)\n", p.Name, p.Stage.Label())
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(p.Tags, ", "))
		fmt.Fprintf(&sb, "Created: %s\n", p.CreatedAt.Format("2006-01-02"))
		sb.WriteString("Key Activities:\n")
		for _, e := range p.History {
			sb.WriteString("- ")
			sb.WriteString(e.FormatLine())
			sb.WriteByte('\n')
		}
		blocks = append(blocks, sb.String())
	}

	prompt := llm.Interpolate(workflowSynthesisPrompt, map[string]string{
		"projects": strings.Join(blocks, projectDumpSeparator),
	})

	narrative, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		return "", goerr.Wrap(err, "failed to synthesize workflow context")
	}

	tmpl, err := uc.templates.Active(ctx, types.TemplateKeyWorkflowContext)
	if err != nil {
		return "", err
	}

	tmpl.Template = narrative
	tmpl.UpdatedAt = uc.now()
	tmpl.SystemGenerated = true

	if err := uc.repo.Template().Put(ctx, tmpl); err != nil {
		return "", goerr.Wrap(err, "failed to store workflow context")
	}

	logging.From(ctx).Info("workflow context regenerated",
		"projects", len(projects), "length", len(narrative))

	return narrative, nil
}

// RefreshWorkflowContext makes WorkflowUseCase usable as a periodic
// worker target.
func (uc *WorkflowUseCase) RefreshWorkflowContext(ctx context.Context) error {
	_, err := uc.Scan(ctx)
	return err
}

package usecase

import (
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/service/persona"
	"github.com/archops-lab/dispatchboard/pkg/service/staffing"
)

type UseCases struct {
	repo interfaces.Repository
	llm  *llm.Client
	now  func() time.Time

	Project  *ProjectUseCase
	User     *UserUseCase
	Template *TemplateUseCase
	Report   *ReportUseCase
	Staffing *StaffingUseCase
	Workflow *WorkflowUseCase
	Auth     *AuthUseCase
}

type Option func(*UseCases)

// WithLLM supplies the text-generation gateway. Without it every
// AI-backed feature degrades to its fallback behavior.
func WithLLM(client *llm.Client) Option {
	return func(uc *UseCases) {
		uc.llm = client
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		llm:  llm.New(nil),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Template = NewTemplateUseCase(repo, uc.now)
	uc.Workflow = NewWorkflowUseCase(repo, uc.llm, uc.Template, uc.now)
	uc.Project = NewProjectUseCase(repo, uc.llm, uc.Template, uc.now)
	uc.User = NewUserUseCase(repo, persona.New(uc.llm), uc.Template, uc.now)
	uc.Report = NewReportUseCase(repo)
	uc.Staffing = NewStaffingUseCase(repo, staffing.New(uc.llm), uc.llm, uc.Template, uc.now)
	uc.Auth = NewAuthUseCase(repo, uc.now)

	return uc
}

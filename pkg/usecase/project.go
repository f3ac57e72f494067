package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/service/llm"
	"github.com/archops-lab/dispatchboard/pkg/utils/async"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
)

// Fallback strings shown in place of an AI summary when generation is
// impossible. They are returned to the caller but never persisted.
const (
	SummaryNotConfigured = "API Key not configured. Unable to generate AI summary."
	SummaryFailed        = "Error connecting to AI service."
)

// summaryHistoryDepth is how many recent entries feed the context
// snapshot prompt.
const summaryHistoryDepth = 10

type ProjectUseCase struct {
	repo      interfaces.Repository
	llm       *llm.Client
	templates *TemplateUseCase
	now       func() time.Time
}

func NewProjectUseCase(repo interfaces.Repository, llmClient *llm.Client, templates *TemplateUseCase, now func() time.Time) *ProjectUseCase {
	return &ProjectUseCase{
		repo:      repo,
		llm:       llmClient,
		templates: templates,
		now:       now,
	}
}

type RegisterProjectInput struct {
	Code         string
	Name         string
	BusinessUnit string
	Manager      string
	Description  string
	Tags         string // raw comma separated
}

// Register adds a project to the dispatch pool. New projects always
// start at the OPPORTUNITY stage with status NEW and empty history.
func (uc *ProjectUseCase) Register(ctx context.Context, input RegisterProjectInput) (*model.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, goerr.Wrap(ErrEmptyProjectName, "cannot register project")
	}

	now := uc.now()
	p := &model.Project{
		ID:           types.NewProjectID(),
		Code:         strings.TrimSpace(input.Code),
		Name:         strings.TrimSpace(input.Name),
		BusinessUnit: input.BusinessUnit,
		Manager:      input.Manager,
		CreatedAt:    now,
		LastActiveAt: now,
		Status:       types.ProjectStatusNew,
		Stage:        types.ProjectStageOpportunity,
		Description:  input.Description,
		Tags:         model.ParseTags(input.Tags),
	}

	created, err := uc.repo.Project().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to register project", goerr.V("name", p.Name))
	}
	return created, nil
}

// List returns the dispatch pool, optionally filtered by a query that
// matches project name, code, manager, or tags (case-insensitive
// substring).
func (uc *ProjectUseCase) List(ctx context.Context, query string) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return projects, nil
	}

	var filtered []*model.Project
	for _, p := range projects {
		if projectMatches(p, query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func projectMatches(p *model.Project, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Code), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Manager), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (uc *ProjectUseCase) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	p, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrProjectNotFound, "no such project", goerr.V("id", id))
		}
		return nil, err
	}
	return p, nil
}

type AppendLogInput struct {
	Date        time.Time
	AuthorID    types.UserID
	Author      string
	Content     string
	Attachments []model.Attachment
}

// AppendLog prepends a history entry. Entries carrying attachments are
// categorized DELIVERABLE, all others NOTE. The project's last-active
// date advances only when the entry date is strictly later. When the
// gateway is configured, a context snapshot refresh is dispatched in
// the background.
func (uc *ProjectUseCase) AppendLog(ctx context.Context, id types.ProjectID, input AppendLogInput) (*model.Project, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, goerr.Wrap(ErrEmptyLogContent, "cannot append log entry")
	}

	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category := types.LogCategoryNote
	if len(input.Attachments) > 0 {
		category = types.LogCategoryDeliverable
	}

	date := input.Date
	if date.IsZero() {
		// Store the fallback at day granularity so the entry compares
		// equal to report ranges that end on the same day.
		y, m, d := uc.now().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	entry := model.LogEntry{
		ID:          types.NewLogID(),
		Date:        date,
		AuthorID:    input.AuthorID,
		Author:      input.Author,
		Content:     input.Content,
		Category:    category,
		Attachments: input.Attachments,
	}
	for i := range entry.Attachments {
		if entry.Attachments[i].ID == "" {
			entry.Attachments[i].ID = types.NewAttachmentID()
		}
	}

	p.AddEntry(entry)

	updated, err := uc.repo.Project().Update(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append log entry", goerr.V("projectID", id))
	}

	if uc.llm.Enabled() {
		async.Dispatch(ctx, func(ctx context.Context) error {
			_, err := uc.GenerateSummary(ctx, updated.ID)
			return err
		})
	}

	return updated, nil
}

type EditLogInput struct {
	Content string
	Date    time.Time
}

// EditLog mutates a history entry's content and date in place, then
// re-sorts the full history by date descending. Editing a date can
// reorder the whole list.
func (uc *ProjectUseCase) EditLog(ctx context.Context, id types.ProjectID, logID types.LogID, input EditLogInput) (*model.Project, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, goerr.Wrap(ErrEmptyLogContent, "cannot edit log entry")
	}

	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range p.History {
		if p.History[i].ID == logID {
			p.History[i].Content = input.Content
			if !input.Date.IsZero() {
				p.History[i].Date = input.Date
			}
			found = true
			break
		}
	}
	if !found {
		return nil, goerr.Wrap(ErrLogEntryNotFound, "no such entry", goerr.V("projectID", id), goerr.V("logID", logID))
	}

	p.SortHistory()

	updated, err := uc.repo.Project().Update(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to edit log entry", goerr.V("projectID", id))
	}
	return updated, nil
}

// TogglePause flips status between PAUSED and IN_PROGRESS. Projects in
// any other status are returned unchanged.
func (uc *ProjectUseCase) TogglePause(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.TogglePause() {
		return p, nil
	}

	updated, err := uc.repo.Project().Update(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to toggle pause", goerr.V("projectID", id))
	}
	return updated, nil
}

type UpdateMetadataInput struct {
	CreatedAt   time.Time
	Tags        string // raw comma separated
	ArchitectID types.UserID
	Stage       types.ProjectStage
}

// UpdateMetadata overwrites creation date, tags, stage, and the
// designated architect.
func (uc *ProjectUseCase) UpdateMetadata(ctx context.Context, id types.ProjectID, input UpdateMetadataInput) (*model.Project, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !input.CreatedAt.IsZero() {
		p.CreatedAt = input.CreatedAt
	}
	p.Tags = model.ParseTags(input.Tags)
	p.ArchitectID = input.ArchitectID
	if input.Stage != "" {
		if !input.Stage.IsValid() {
			return nil, goerr.New("invalid project stage", goerr.V("stage", input.Stage))
		}
		p.Stage = input.Stage
	}

	updated, err := uc.repo.Project().Update(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update metadata", goerr.V("projectID", id))
	}
	return updated, nil
}

// SetStatus moves a project to the given lifecycle status. Projects
// are never auto-expired; every transition is user-triggered.
func (uc *ProjectUseCase) SetStatus(ctx context.Context, id types.ProjectID, status types.ProjectStatus) (*model.Project, error) {
	if !status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidStatus, "cannot set status", goerr.V("status", status))
	}

	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Status = status

	updated, err := uc.repo.Project().Update(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set status", goerr.V("projectID", id))
	}
	return updated, nil
}

// GenerateSummary regenerates the project's context snapshot from its
// recent history. The result is persisted only on success, and only if
// the project has not changed since the request was dispatched; a
// fallback message is returned, not stored, when generation is
// impossible.
func (uc *ProjectUseCase) GenerateSummary(ctx context.Context, id types.ProjectID) (string, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if !uc.llm.Enabled() {
		return SummaryNotConfigured, nil
	}

	tmpl, err := uc.templates.Active(ctx, types.TemplateKeyProjectSummary)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, summaryHistoryDepth)
	for _, e := range p.RecentHistory(summaryHistoryDepth) {
		lines = append(lines, e.FormatLine())
	}

	prompt := llm.Interpolate(tmpl.Template, map[string]string{
		"projectName":     p.Name,
		"workflowContext": uc.templates.workflowContext(ctx),
		"history":         strings.Join(lines, "\n"),
	})

	summary, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		logging.From(ctx).Warn("failed to generate project summary",
			"projectID", id, "error", err)
		return SummaryFailed, nil
	}

	if err := uc.repo.Project().SetSummary(ctx, p.ID, summary, p.Revision); err != nil {
		if errors.Is(err, interfaces.ErrStaleRevision) {
			logging.From(ctx).Info("discarded stale summary response", "projectID", id)
			return summary, nil
		}
		return "", goerr.Wrap(err, "failed to store summary", goerr.V("projectID", id))
	}

	return summary, nil
}

// CheckDuplicate asks the gateway whether name sounds like a duplicate
// of an existing project. It returns an empty string when no risk is
// detected, when the gateway is not configured, or when the call
// fails; a non-empty return is a warning to surface verbatim.
func (uc *ProjectUseCase) CheckDuplicate(ctx context.Context, name string) (string, error) {
	if !uc.llm.Enabled() {
		return "", nil
	}

	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list projects for duplicate check")
	}

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}

	tmpl, err := uc.templates.Active(ctx, types.TemplateKeyDuplicateCheck)
	if err != nil {
		return "", err
	}

	prompt := llm.Interpolate(tmpl.Template, map[string]string{
		"newProjectName":       name,
		"existingProjectNames": strings.Join(names, ", "),
	})

	text, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		logging.From(ctx).Warn("duplicate check failed", "name", name, "error", err)
		return "", nil
	}

	if text == "NO" {
		return "", nil
	}
	return text, nil
}

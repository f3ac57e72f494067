package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[types.ProjectID]*model.Project
	order    []types.ProjectID
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[types.ProjectID]*model.Project),
	}
}

// copyEntry creates a deep copy of a history entry
func copyEntry(e model.LogEntry) model.LogEntry {
	copied := e
	if e.Attachments != nil {
		copied.Attachments = make([]model.Attachment, len(e.Attachments))
		copy(copied.Attachments, e.Attachments)
	}
	return copied
}

// copyProject creates a deep copy of a project
func copyProject(p *model.Project) *model.Project {
	copied := *p

	if p.Tags != nil {
		copied.Tags = make([]string, len(p.Tags))
		copy(copied.Tags, p.Tags)
	}

	if p.History != nil {
		copied.History = make([]model.LogEntry, len(p.History))
		for i, e := range p.History {
			copied.History[i] = copyEntry(e)
		}
	}

	return &copied
}

func (r *projectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid project")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[p.ID]; exists {
		return nil, goerr.New("project already exists", goerr.V("id", p.ID))
	}

	created := copyProject(p)
	created.Revision = 1
	r.projects[created.ID] = created
	r.order = append(r.order, created.ID)

	return copyProject(created), nil
}

func (r *projectRepository) Get(ctx context.Context, id types.ProjectID) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", id))
	}

	return copyProject(p), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*model.Project, 0, len(r.order))
	for _, id := range r.order {
		projects = append(projects, copyProject(r.projects[id]))
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[p.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", p.ID))
	}

	updated := copyProject(p)
	updated.Revision = existing.Revision + 1
	r.projects[updated.ID] = updated

	return copyProject(updated), nil
}

func (r *projectRepository) SetSummary(ctx context.Context, id types.ProjectID, summary string, rev int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[id]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "project not found", goerr.V("id", id))
	}

	if existing.Revision != rev {
		return goerr.Wrap(interfaces.ErrStaleRevision, "project changed since generation started",
			goerr.V("id", id),
			goerr.V("expected", rev),
			goerr.V("actual", existing.Revision),
		)
	}

	existing.AISummary = summary
	existing.Revision++
	return nil
}

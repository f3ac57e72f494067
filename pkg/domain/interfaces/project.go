package interfaces

import (
	"context"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// ProjectRepository defines the interface for Project data access
type ProjectRepository interface {
	// Create stores a new project. The caller assigns the ID.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// Get retrieves a project by ID
	Get(ctx context.Context, id types.ProjectID) (*model.Project, error)

	// List retrieves all projects
	List(ctx context.Context) ([]*model.Project, error)

	// Update replaces an existing project and bumps its revision
	Update(ctx context.Context, p *model.Project) (*model.Project, error)

	// SetSummary writes the AI summary only if the project revision still
	// equals rev; otherwise ErrStaleRevision is returned and the stale
	// response is discarded.
	SetSummary(ctx context.Context, id types.ProjectID, summary string, rev int64) error
}

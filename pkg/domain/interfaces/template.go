package interfaces

import (
	"context"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// TemplateRepository defines the interface for PromptTemplate data access
type TemplateRepository interface {
	// Put creates or replaces a template by ID
	Put(ctx context.Context, t *model.PromptTemplate) error

	// Get retrieves a template by ID
	Get(ctx context.Context, id types.TemplateID) (*model.PromptTemplate, error)

	// GetByKey retrieves the first template matching the key. That first
	// match is the active template for the feature.
	GetByKey(ctx context.Context, key types.TemplateKey) (*model.PromptTemplate, error)

	// List retrieves all templates in insertion order
	List(ctx context.Context) ([]*model.PromptTemplate, error)
}

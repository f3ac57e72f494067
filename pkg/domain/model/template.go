package model

import (
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// PromptTemplate is a human-editable prompt text blob with {{name}}
// placeholder tokens, keyed by the AI feature it drives.
type PromptTemplate struct {
	ID          types.TemplateID
	Key         types.TemplateKey
	Name        string
	Description string
	Template    string
	UpdatedAt   time.Time

	// SystemGenerated marks content that is regenerated from aggregate
	// history (the WORKFLOW_CONTEXT template) rather than hand-edited.
	SystemGenerated bool
}

package interfaces

import (
	"context"
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Create stores a new user. The caller assigns the ID.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*model.User, error)

	// Update replaces an existing user and bumps its revision
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// SetPersona writes a generated persona only if the user revision
	// still equals rev; otherwise ErrStaleRevision is returned.
	SetPersona(ctx context.Context, id types.UserID, persona *model.Persona, updatedAt time.Time, rev int64) error
}

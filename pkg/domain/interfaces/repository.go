package interfaces

import (
	"context"
	"errors"

	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
)

// Sentinel errors shared by all repository backends
var (
	ErrNotFound = errors.New("record not found")

	// ErrStaleRevision is returned when a guarded write (AI summary or
	// persona) targets an entity whose revision has moved since the
	// generation request was dispatched.
	ErrStaleRevision = errors.New("stale revision")
)

// Repository defines the interface for data persistence
type Repository interface {
	Project() ProjectRepository
	User() UserRepository
	Template() TemplateRepository

	// Session token methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}

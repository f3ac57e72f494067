package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.User
	order []types.UserID
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.User),
	}
}

// copyUser creates a deep copy of a user
func copyUser(u *model.User) *model.User {
	copied := *u
	if u.Persona != nil {
		persona := *u.Persona
		if u.Persona.Domains != nil {
			persona.Domains = make([]string, len(u.Persona.Domains))
			copy(persona.Domains, u.Persona.Domains)
		}
		copied.Persona = &persona
	}
	return &copied
}

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := u.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return nil, goerr.New("user already exists", goerr.V("id", u.ID))
	}

	created := copyUser(u)
	created.Revision = 1
	r.users[created.ID] = created
	r.order = append(r.order, created.ID)

	return copyUser(created), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
	}

	return copyUser(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].Email == email {
			return copyUser(r.users[id]), nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("email", email))
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, copyUser(r.users[id]))
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[u.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", u.ID))
	}

	updated := copyUser(u)
	updated.Revision = existing.Revision + 1
	r.users[updated.ID] = updated

	return copyUser(updated), nil
}

func (r *userRepository) SetPersona(ctx context.Context, id types.UserID, persona *model.Persona, updatedAt time.Time, rev int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[id]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
	}

	if existing.Revision != rev {
		return goerr.Wrap(interfaces.ErrStaleRevision, "user changed since generation started",
			goerr.V("id", id),
			goerr.V("expected", rev),
			goerr.V("actual", existing.Revision),
		)
	}

	updated := copyUser(existing)
	updated.Persona = persona
	updated.PersonaUpdatedAt = updatedAt
	updated.Revision++
	r.users[id] = copyUser(updated)
	return nil
}

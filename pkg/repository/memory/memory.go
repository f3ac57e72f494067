package memory

import (
	"context"
	"sync"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
	"github.com/m-mizutani/goerr/v2"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend used for development and tests
type Memory struct {
	project  *projectRepository
	user     *userRepository
	template *templateRepository
	tokens   *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		project:  newProjectRepository(),
		user:     newUserRepository(),
		template: newTemplateRepository(),
		tokens:   newTokenStore(),
	}
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Template() interfaces.TemplateRepository {
	return m.template
}

func (m *Memory) Close() error {
	return nil
}

type tokenStore struct {
	mu     sync.RWMutex
	tokens map[auth.TokenID]*auth.Token
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens: make(map[auth.TokenID]*auth.Token),
	}
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	m.tokens.tokens[token.ID] = token
	return nil
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	m.tokens.mu.RLock()
	defer m.tokens.mu.RUnlock()

	token, ok := m.tokens.tokens[tokenID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}

	return token, nil
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	if _, ok := m.tokens.tokens[tokenID]; !ok {
		return interfaces.ErrNotFound
	}

	delete(m.tokens.tokens, tokenID)
	return nil
}

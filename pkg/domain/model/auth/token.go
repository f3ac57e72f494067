package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// TokenID identifies a session token
type TokenID string

// String returns the string representation of the token ID
func (id TokenID) String() string {
	return string(id)
}

// Validate checks if the token ID is valid
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID is empty")
	}
	return nil
}

// TokenSecret is the opaque secret paired with a token ID
type TokenSecret string

// String returns the string representation of the token secret
func (s TokenSecret) String() string {
	return string(s)
}

// DefaultTokenTTL is how long a session token stays valid
const DefaultTokenTTL = 24 * time.Hour

// Token is a session token issued at login
type Token struct {
	ID        TokenID
	Secret    TokenSecret
	UserID    types.UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewToken issues a fresh token for the given user
func NewToken(userID types.UserID, now time.Time) *Token {
	return &Token{
		ID:        TokenID(uuid.Must(uuid.NewV7()).String()),
		Secret:    TokenSecret(uuid.Must(uuid.NewV7()).String()),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(DefaultTokenTTL),
	}
}

// Validate checks the structural integrity of the token
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.Secret == "" {
		return goerr.New("token secret is empty")
	}
	if err := t.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "token has no user")
	}
	return nil
}

// IsExpired reports whether the token has passed its expiry
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/interfaces"
	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
)

// AuthUseCase issues and validates session tokens. Authentication is
// deliberately mock-grade: any password is accepted for a known email.
// Authorization, by contrast, is enforced server side via the role on
// the resolved user.
type AuthUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewAuthUseCase(repo interfaces.Repository, now func() time.Time) *AuthUseCase {
	return &AuthUseCase{repo: repo, now: now}
}

// Login resolves the user by email and issues a session token. The
// password is intentionally ignored.
func (uc *AuthUseCase) Login(ctx context.Context, email, _ string) (*auth.Token, *model.User, error) {
	u, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil, goerr.Wrap(ErrUserNotFound, "unknown email", goerr.V("email", email))
		}
		return nil, nil, err
	}

	token := auth.NewToken(u.ID, uc.now())
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to store session token")
	}

	return token, u, nil
}

// ValidateToken resolves a session token to its user, rejecting
// unknown, mismatched, or expired tokens.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*model.User, error) {
	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidToken, "unknown token")
		}
		return nil, err
	}

	if token.Secret != secret {
		return nil, goerr.Wrap(ErrInvalidToken, "secret mismatch")
	}
	if token.IsExpired(uc.now()) {
		return nil, goerr.Wrap(ErrInvalidToken, "token expired")
	}

	u, err := uc.repo.User().Get(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidToken, "token user no longer exists")
		}
		return nil, err
	}

	return u, nil
}

// Logout revokes the session token. Revoking an unknown token is not
// an error.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to revoke token")
	}
	return nil
}

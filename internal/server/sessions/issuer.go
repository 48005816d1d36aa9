// Package sessions implements the session token issuer. A token is valid
// only while both its HS256 signature verifies and it is still present in
// the owning user's token list, so revocation takes effect immediately and
// globally.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/auth"
	"github.com/atfurman/taskapp/internal/server/config"
	"github.com/atfurman/taskapp/internal/server/models"
)

// UserGetter is the slice of the users repository the issuer needs to
// confirm a decoded token still refers to an existing account.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type Issuer struct {
	repo     Repository
	users    UserGetter
	secret   []byte
	validity time.Duration
}

func NewIssuer(repo Repository, users UserGetter, cfg *config.Config) *Issuer {
	return &Issuer{
		repo:     repo,
		users:    users,
		secret:   []byte(cfg.SecretKey),
		validity: cfg.TokenValidityDuration,
	}
}

// Issue mints a signed token for userID and appends it to the user's token
// list. Prior tokens stay valid; each login gets its own session.
func (i *Issuer) Issue(ctx context.Context, userID string) (string, error) {

	token, err := auth.GenerateToken(userID, i.secret, i.validity)
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := i.repo.Add(ctx, userID, token); err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Revoke removes exactly the presented token from the user's list.
func (i *Issuer) Revoke(ctx context.Context, userID, token string) error {
	return i.repo.Delete(ctx, userID, token)
}

// RevokeAll clears the user's token list, ending every session at once.
func (i *Issuer) RevokeAll(ctx context.Context, userID string) error {
	return i.repo.DeleteAll(ctx, userID)
}

// Verify resolves a presented token to a user id. The checks run in order:
// signature and expiry first (stateless, cheap), then user existence, then
// the authoritative list-membership check. Every failure collapses to
// ErrorUnauthorized.
func (i *Issuer) Verify(ctx context.Context, token string) (string, error) {

	userID, err := auth.GetUserIDFromToken(token, i.secret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	if _, err := i.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	active, err := i.repo.Exists(ctx, userID, token)
	if err != nil {
		return "", common.ErrorInternal
	}
	if !active {
		return "", common.ErrorUnauthorized
	}

	return userID, nil
}

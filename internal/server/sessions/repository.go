package sessions

import "context"

// Repository maintains each user's ordered token list, the authoritative
// record of active sessions.
type Repository interface {
	Add(ctx context.Context, userID string, token string) error
	Exists(ctx context.Context, userID string, token string) (bool, error)

	// Delete removes exactly the matching token. Removing a token that is
	// already gone is not an error.
	Delete(ctx context.Context, userID string, token string) error

	// DeleteAll clears the user's token list ("logout everywhere").
	DeleteAll(ctx context.Context, userID string) error
}

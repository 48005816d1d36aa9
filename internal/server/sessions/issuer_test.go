package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/server/auth"
	"github.com/atfurman/taskapp/internal/server/config"
	"github.com/atfurman/taskapp/internal/server/models"
)

// fakeRepo is an in-memory token list.
type fakeRepo struct {
	tokens map[string][]string
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tokens: map[string][]string{}}
}

func (f *fakeRepo) Add(ctx context.Context, userID, token string) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[userID] = append(f.tokens[userID], token)
	return nil
}

func (f *fakeRepo) Exists(ctx context.Context, userID, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, t := range f.tokens[userID] {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Delete(ctx context.Context, userID, token string) error {
	if f.err != nil {
		return f.err
	}
	kept := f.tokens[userID][:0]
	for _, t := range f.tokens[userID] {
		if t != token {
			kept = append(kept, t)
		}
	}
	f.tokens[userID] = kept
	return nil
}

func (f *fakeRepo) DeleteAll(ctx context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.tokens, userID)
	return nil
}

type fakeUsers struct {
	err error
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id}, nil
}

func newTestIssuer(repo Repository, users UserGetter) *Issuer {
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	return NewIssuer(repo, users, cfg)
}

func TestIssueAndVerify(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{})
	ctx := context.Background()

	token, err := issuer.Issue(ctx, "u-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := issuer.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != "u-1" {
		t.Fatalf("userID mismatch: got %q", userID)
	}
}

func TestIssue_EachLoginGetsOwnSession(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{})
	ctx := context.Background()

	first, err := issuer.Issue(ctx, "u-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	second, err := issuer.Issue(ctx, "u-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// immediate successive logins must not collapse into one token,
	// the session list keys revocation on the exact token string
	if first == second {
		t.Fatalf("each login must mint a distinct token")
	}
	if got := len(repo.tokens["u-1"]); got != 2 {
		t.Fatalf("expected 2 active sessions, got %d", got)
	}
}

func TestVerify_RevokedTokenIsRejected(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{})
	ctx := context.Background()

	first, _ := issuer.Issue(ctx, "u-1")
	second, _ := issuer.Issue(ctx, "u-1")

	if err := issuer.Revoke(ctx, "u-1", first); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	// the revoked token fails even though its signature is still valid
	if _, err := issuer.Verify(ctx, first); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for revoked token, got %v", err)
	}

	// the other session stays alive
	if _, err := issuer.Verify(ctx, second); err != nil {
		t.Fatalf("second session must survive: %v", err)
	}
}

func TestRevokeAll_EndsEverySession(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{})
	ctx := context.Background()

	first, _ := issuer.Issue(ctx, "u-1")
	second, _ := issuer.Issue(ctx, "u-1")

	if err := issuer.RevokeAll(ctx, "u-1"); err != nil {
		t.Fatalf("RevokeAll error: %v", err)
	}

	for _, token := range []string{first, second} {
		if _, err := issuer.Verify(ctx, token); !errors.Is(err, common.ErrorUnauthorized) {
			t.Fatalf("expected ErrorUnauthorized, got %v", err)
		}
	}
}

func TestVerify_DeletedUserIsRejected(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{err: common.ErrorNotFound})
	ctx := context.Background()

	token, err := auth.GenerateToken("u-gone", []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	repo.tokens["u-gone"] = []string{token}

	if _, err := issuer.Verify(ctx, token); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for deleted user, got %v", err)
	}
}

func TestVerify_ForgedTokenIsRejected(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{})
	ctx := context.Background()

	forged, err := auth.GenerateToken("u-1", []byte("other-key"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := issuer.Verify(ctx, forged); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for forged token, got %v", err)
	}
}

func TestVerify_RepoErrorIsInternal(t *testing.T) {
	repo := newFakeRepo()
	issuer := newTestIssuer(repo, &fakeUsers{})
	ctx := context.Background()

	token, err := issuer.Issue(ctx, "u-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	repo.err = errors.New("db down")

	if _, err := issuer.Verify(ctx, token); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected ErrorInternal, got %v", err)
	}
}

// Package users implements the credential store: account records, password
// hashing and verification, profile updates, and the delete cascade.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atfurman/taskapp/internal/common"
	"github.com/atfurman/taskapp/internal/logging"
	"github.com/atfurman/taskapp/internal/server/models"
)

// dummyHash keeps Authenticate doing a bcrypt comparison even when the email
// is unknown, so the two failure modes cost the same.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Mailer is the notification sink. Failures are logged and never surfaced
// to the primary operation.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendCancellation(ctx context.Context, email, name string) error
}

// TaskPurger removes all tasks owned by a user (delete cascade).
type TaskPurger interface {
	DeleteByOwner(ctx context.Context, owner string) error
}

// SessionPurger removes all session tokens of a user.
type SessionPurger interface {
	DeleteAll(ctx context.Context, userID string) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// UpdateParams carries a partial profile update; nil means "leave as is".
// The allow-list of updatable fields is exactly the set of fields here.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

type Service struct {
	repo     Repository
	tasks    TaskPurger
	sessions SessionPurger
	mailer   Mailer
	logger   logging.Logger
}

func NewService(repo Repository, tasks TaskPurger, sessions SessionPurger, mailer Mailer, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		tasks:    tasks,
		sessions: sessions,
		mailer:   mailer,
		logger:   logger.With("module", "users"),
	}
}

// Register validates and creates a new account. The password is hashed
// before it ever reaches the repository. A welcome mail is sent
// best-effort in the background.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {

	name := strings.TrimSpace(params.Name)
	email := normalizeEmail(params.Email)

	if err := validateProfile(name, email, params.Age); err != nil {
		return nil, err
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Age:          params.Age,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.notify("welcome mail", func(ctx context.Context) error {
		return s.mailer.SendWelcome(ctx, user.Email, user.Name)
	})

	return user, nil
}

// Authenticate resolves email+password to a user. Unknown email and wrong
// password both return ErrorInvalidCredentials; nothing distinguishes the
// two cases.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial profile update. All supplied fields are
// re-validated against the full profile rules; a supplied password is
// re-hashed.
func (s *Service) Update(ctx context.Context, userID string, params UpdateParams) (*models.User, error) {

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		user.Name = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		user.Email = normalizeEmail(*params.Email)
	}
	if params.Age != nil {
		user.Age = *params.Age
	}

	if err := validateProfile(user.Name, user.Email, user.Age); err != nil {
		return nil, err
	}

	if params.Password != nil {
		if err := validatePassword(*params.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %v", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, err
	}

	return user, nil
}

// Delete removes the user and everything scoped to it: tasks first, then
// session tokens, then the account row. The steps run sequentially without
// a surrounding transaction; a crash mid-way can leave orphans, which is an
// accepted limitation. A farewell mail is sent best-effort afterwards.
func (s *Service) Delete(ctx context.Context, user *models.User) error {

	if err := s.tasks.DeleteByOwner(ctx, user.ID); err != nil {
		return fmt.Errorf("error deleting tasks: %w", err)
	}
	if err := s.sessions.DeleteAll(ctx, user.ID); err != nil {
		return fmt.Errorf("error deleting sessions: %w", err)
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	s.notify("cancellation mail", func(ctx context.Context) error {
		return s.mailer.SendCancellation(ctx, user.Email, user.Name)
	})

	return nil
}

// notify runs a notification in the background with its own deadline.
// Errors are logged only; the primary operation has already succeeded.
func (s *Service) notify(what string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Warn(ctx, "notification failed", "kind", what, "error", err.Error())
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

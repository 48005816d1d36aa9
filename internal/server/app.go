// Package server initializes and runs the task application server.
// It wires the storage backends, the notification sink and the avatar
// store, runs migrations, and starts the HTTP server with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/atfurman/taskapp/internal/logging"
	"github.com/atfurman/taskapp/internal/server/avatars"
	"github.com/atfurman/taskapp/internal/server/config"
	"github.com/atfurman/taskapp/internal/server/httpapi"
	"github.com/atfurman/taskapp/internal/server/mail"
	"github.com/atfurman/taskapp/internal/server/sessions"
	"github.com/atfurman/taskapp/internal/server/shared/db"
	"github.com/atfurman/taskapp/internal/server/tasks"
	"github.com/atfurman/taskapp/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	mailer, err := mail.NewService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("mail init error: %w", err)
	}

	blobs, err := newAvatarStore(cfg, rm)
	if err != nil {
		return nil, fmt.Errorf("avatar store init error: %w", err)
	}

	ts := tasks.NewService(rm.Tasks())
	issuer := sessions.NewIssuer(rm.Sessions(), rm.Users(), cfg)
	us := users.NewService(rm.Users(), ts, rm.Sessions(), mailer, logger)

	srv := httpapi.NewServer(cfg.EndpointAddr, logger, us, ts, issuer, blobs)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func newAvatarStore(cfg *config.Config, rm db.RepositoryManager) (avatars.BlobStore, error) {
	switch cfg.AvatarStore {
	case "s3":
		return avatars.NewS3Store(cfg, rm.Users())
	case "postgres":
		return avatars.NewPostgresStore(rm.Users()), nil
	default:
		return nil, fmt.Errorf("unknown avatar store: %s", cfg.AvatarStore)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}

// Package httpapi exposes the task app over HTTP/JSON using Fiber. The
// handlers translate between the wire contracts and the domain services;
// all business rules live below this layer.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/atfurman/taskapp/internal/logging"
	"github.com/atfurman/taskapp/internal/server/avatars"
	"github.com/atfurman/taskapp/internal/server/sessions"
	"github.com/atfurman/taskapp/internal/server/tasks"
	"github.com/atfurman/taskapp/internal/server/users"
)

type Server struct {
	app     *fiber.App
	address string
	users   *users.Service
	tasks   *tasks.Service
	issuer  *sessions.Issuer
	avatars avatars.BlobStore
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, us *users.Service, ts *tasks.Service, issuer *sessions.Issuer, blobs avatars.BlobStore) *Server {

	s := &Server{
		address: address,
		users:   us,
		tasks:   ts,
		issuer:  issuer,
		avatars: blobs,
		logger:  l.With("module", "http_server"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "taskapp",
		DisableStartupMessage: true,
	})
	app.Use(s.accessLog)

	s.app = app
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {

	s.app.Get("/health", s.health)

	s.app.Post("/users", s.register)
	s.app.Post("/users/login", s.login)
	s.app.Post("/users/logout", s.requireAuth, s.logout)
	s.app.Post("/users/logoutAll", s.requireAuth, s.logoutAll)
	s.app.Get("/users/me", s.requireAuth, s.getProfile)
	s.app.Patch("/users/me", s.requireAuth, s.updateProfile)
	s.app.Delete("/users/me", s.requireAuth, s.deleteProfile)
	s.app.Post("/users/me/avatar", s.requireAuth, s.uploadAvatar)
	s.app.Delete("/users/me/avatar", s.requireAuth, s.deleteAvatar)

	// public: avatars are served without authentication
	s.app.Get("/users/:id/avatar", s.getAvatar)

	s.app.Post("/tasks", s.requireAuth, s.createTask)
	s.app.Get("/tasks", s.requireAuth, s.listTasks)
	s.app.Get("/tasks/:id", s.requireAuth, s.getTask)
	s.app.Patch("/tasks/:id", s.requireAuth, s.updateTask)
	s.app.Delete("/tasks/:id", s.requireAuth, s.deleteTask)
}

// App exposes the router for tests (Fiber's app.Test).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)
	return err
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Run starts the listener and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}

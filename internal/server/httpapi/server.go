// Package httpapi serves a read-only JSON view of the ledgers over HTTP.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type rewardReader interface {
	GetBalance(ctx context.Context, user models.UserID) (models.Points, error)
}

type fileReader interface {
	GetFile(ctx context.Context, fileID uint64) (models.FileRecord, error)
	GetShare(ctx context.Context, permissionID uint64) (models.SharePermission, error)
	GetUserFileCount(ctx context.Context, owner models.Identity) (uint64, error)
	GetSyncStats(ctx context.Context) (models.SyncStats, error)
	GetRetention(ctx context.Context) (time.Time, error)
}

type Server struct {
	app     *fiber.App
	addr    string
	rewards rewardReader
	files   fileReader
	logger  logging.Logger
}

func NewServer(addr string, l logging.Logger, rewards rewardReader, files fileReader) *Server {
	s := &Server{
		addr:    addr,
		rewards: rewards,
		files:   files,
		logger:  l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "fileledger",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.app.Use(recover.New())
	s.app.Use(s.requestLogger)
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.health)

	v1 := s.app.Group("/api/v1")
	v1.Get("/stats", s.stats)
	v1.Get("/retention", s.retention)
	v1.Get("/files/:id", s.file)
	v1.Get("/shares/:id", s.share)
	v1.Get("/users/:id/files/count", s.userFileCount)
	v1.Get("/rewards/:user", s.balance)
}

// App exposes the fiber app, mostly for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	s.logger.Info(c.UserContext(), "http request",
		"method", c.Method(), "path", c.Path(), "status", status, "duration", time.Since(start))
	return err
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}

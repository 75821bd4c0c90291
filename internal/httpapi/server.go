// Package httpapi serves ContactPro as a local JSON API on top of fiber.
// Handlers translate requests into intents and share the dispatcher used by
// the terminal renderers, so every call goes through the same service.
package httpapi

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/logging"
)

type Server struct {
	address         string
	shutdownTimeout time.Duration

	app      *fiber.App
	d        *intent.Dispatcher
	log      logging.Logger
	validate *validator.Validate
}

func NewServer(address string, shutdownTimeout time.Duration, d *intent.Dispatcher, log logging.Logger) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		d:               d,
		log:             log.With("module", "http_server"),
		validate:        v,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "ContactPro",
		ErrorHandler: errorHandler,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	s.setupRoutes()
	return s
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupRoutes() {
	s.app.Use(requestid.New())
	s.app.Use(recover.New())
	s.app.Use(metrics())
	s.app.Use(s.accessLog())

	s.app.Get("/healthz", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")
	api.Get("/state", s.state)

	api.Get("/contacts", s.listContacts)
	api.Post("/contacts", s.createContact)
	api.Post("/contacts/delete", s.deleteContacts)
	api.Get("/contacts/:id", s.getContact)
	api.Put("/contacts/:id", s.updateContact)
	api.Delete("/contacts/:id", s.deleteContact)

	api.Put("/view/filter", s.setFilter)
	api.Put("/view/sort", s.setSort)
	api.Get("/tags", s.tags)

	api.Get("/export", s.export)
	api.Post("/import", s.importContacts)
	api.Post("/backup", s.backup)
	api.Post("/restore", s.restore)
	api.Post("/undo", s.undo)
	api.Post("/redo", s.redo)

	api.Get("/theme", s.theme)
	api.Post("/theme/toggle", s.toggleTheme)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

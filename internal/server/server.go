// Package server exposes the generator over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/specialistvlad/skeletongen/internal/app"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/project"
	"github.com/specialistvlad/skeletongen/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Server routes HTTP requests to an App.
type Server struct {
	app   *app.App
	fiber *fiber.App
}

// New builds the fiber application and registers every route.
func New(a *app.App) *Server {
	s := &Server{app: a}
	s.fiber = fiber.New(fiber.Config{
		AppName:      "skeletongen",
		ErrorHandler: errorHandler,
	})
	s.fiber.Use(recoverer.New(recoverer.Config{
		EnableStackTrace:  true,
		StackTraceHandler: s.logPanic,
	}))
	s.fiber.Use(s.logRequests)

	s.fiber.Get("/health", func(c fiber.Ctx) error {
		return c.SendString("OK")
	})

	v1 := s.fiber.Group("/v1")
	v1.Post("/generate", s.generate)
	v1.Post("/preview", s.preview)
	v1.Post("/validate", s.validate)

	v1.Get("/projects", s.listProjects)
	v1.Post("/projects", s.createProject)
	v1.Get("/projects/:id", s.getProject)
	v1.Get("/projects/:id/source", s.projectSource)
	v1.Delete("/projects/:id", s.deleteProject)
	return s
}

// Handler returns the underlying fiber application.
func (s *Server) Handler() *fiber.App {
	return s.fiber
}

// Listen serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	logger := s.app.Logger()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting.", "address", addr)
		errCh <- s.fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Shutting down HTTP server...")
	if err := s.fiber.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	return nil
}

func (s *Server) logRequests(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	s.app.Logger().Debug("HTTP request.",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start))
	return err
}

// logPanic records a recovered handler panic; the request itself is
// answered with a 500 by errorHandler.
func (s *Server) logPanic(c fiber.Ctx, e any) {
	s.app.Logger().Error("HTTP handler panicked.",
		"method", c.Method(),
		"path", c.Path(),
		"panic", e,
		"stack", string(debug.Stack()))
}

func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) ctx(c fiber.Ctx) context.Context {
	return s.app.Context(c.Context())
}

// decodeDocument reads a project or graph snapshot from the request body.
// YAML is accepted when the content type says so.
func decodeDocument(c fiber.Ctx) (*project.Document, error) {
	format := project.FormatJSON
	if strings.Contains(strings.ToLower(c.Get(fiber.HeaderContentType)), "yaml") {
		format = project.FormatYAML
	}
	return project.ParseBytes(c.Body(), format)
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) generate(c fiber.Ctx) error {
	doc, err := decodeDocument(c)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(s.app.GenerateDocument(s.ctx(c), doc))
}

func (s *Server) preview(c fiber.Ctx) error {
	var nd project.NodeDoc
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&nd); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(s.app.Preview(s.ctx(c), nd.ToNode()))
}

func (s *Server) validate(c fiber.Ctx) error {
	doc, err := decodeDocument(c)
	if err != nil {
		return badRequest(c, err)
	}
	diags := s.app.Validate(s.ctx(c), doc.ToGraph())
	return c.JSON(fiber.Map{"diagnostics": diags, "valid": !diags.HasErrors()})
}

func (s *Server) listProjects(c fiber.Ctx) error {
	list, err := s.app.ListProjects(s.ctx(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (s *Server) createProject(c fiber.Ctx) error {
	doc, err := decodeDocument(c)
	if err != nil {
		return badRequest(c, err)
	}
	saved, err := s.app.SaveProject(s.ctx(c), doc)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (s *Server) getProject(c fiber.Ctx) error {
	doc, err := s.app.GetProject(s.ctx(c), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(doc)
}

func (s *Server) projectSource(c fiber.Ctx) error {
	res, err := s.app.GenerateStored(s.ctx(c), c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.FileName+`"`)
	c.Set("X-Diagnostics-Errors", strconv.Itoa(res.Diagnostics.Count(graph.SeverityError)))
	return c.SendString(res.SourceText)
}

func (s *Server) deleteProject(c fiber.Ctx) error {
	if err := s.app.DeleteProject(s.ctx(c), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func storeError(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
	}
	return err
}

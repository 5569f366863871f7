package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/storage"
	"github.com/rgehrsitz/fiplan/internal/transform"
)

// MaxYears caps the horizon a client may request
const MaxYears = 200

// Server exposes projections over HTTP
type Server struct {
	Engine    *calculation.ProjectionEngine
	Parser    *config.InputParser
	Templates *transform.TemplateRegistry
	Logger    calculation.Logger

	// Store enables the /v1/profiles routes when set
	Store storage.ConfigStore

	baseCtx context.Context
}

// NewServer creates a server around engine with the built-in templates
func NewServer(engine *calculation.ProjectionEngine) *Server {
	return &Server{
		Engine:    engine,
		Parser:    config.NewInputParser(),
		Templates: transform.CreateBuiltInTemplates(),
		Logger:    calculation.NopLogger{},
	}
}

// Handler returns the request router
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		s.route(ctx)
		s.logger().Infof("%s %s %d %s", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start))
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case path == "/v1/projection":
		if !allow(ctx, fasthttp.MethodPost) {
			return
		}
		s.handleProjection(ctx)
	case path == "/v1/validate":
		if !allow(ctx, fasthttp.MethodPost) {
			return
		}
		s.handleValidate(ctx)
	case path == "/v1/templates":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		s.handleTemplates(ctx)
	case s.Store != nil && path == "/v1/profiles":
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		s.handleListProfiles(ctx)
	case s.Store != nil && strings.HasPrefix(path, "/v1/profiles/"):
		s.handleProfile(ctx, strings.TrimPrefix(path, "/v1/profiles/"))
	default:
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", path))
	}
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "fiplan",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.baseCtx = ctx

	errCh := make(chan error, 1)
	go func() {
		s.logger().Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// context is cancelled when ListenAndServe stops
func (s *Server) context() context.Context {
	if s.baseCtx == nil {
		return context.Background()
	}
	return s.baseCtx
}

func (s *Server) logger() calculation.Logger {
	if s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}

func allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// statusFor maps an error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, storage.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusServiceUnavailable
	}
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return fasthttp.StatusBadRequest
	}
	return fasthttp.StatusInternalServerError
}

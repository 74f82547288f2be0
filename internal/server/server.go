package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"github.com/fr0stylo/msgsink/internal/observability"
)

// RouteRegister registers Echo routes.
type RouteRegister interface {
	RegisterRoutes(s *echo.Echo)
}

// Options tunes the middleware stack.
type Options struct {
	ServiceName string
	Tracing     bool
	Metrics     *observability.Metrics
}

// Server holds the Echo instance.
type Server struct {
	e *echo.Echo
}

// New creates a server with recovery, request ids, tracing and access logs.
func New(log *slog.Logger, opts Options) *Server {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if opts.Tracing {
		e.Use(observability.EchoMiddleware(opts.ServiceName))
	}
	e.Use(observability.EchoSpanEnrichmentMiddleware())
	e.Use(slogecho.NewWithConfig(log, slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithTraceID:      opts.Tracing,
		WithSpanID:       opts.Tracing,
		Filters:          []slogecho.Filter{slogecho.IgnorePath("/health/live", "/metrics")},
	}))
	if opts.Metrics != nil {
		e.Use(opts.Metrics.EchoMiddleware())
	}

	return &Server{
		e: e,
	}
}

// RegisterRouter attaches a route registrar.
func (s *Server) RegisterRouter(r RouteRegister) {
	r.RegisterRoutes(s.e)
}

// Handler exposes the router for in-process use.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start(addr string) error {
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

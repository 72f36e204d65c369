// Package server exposes FlashBlade array queries as MCP tools over stdio or
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fb-mcp/internal/flashblade"
)

// ServerName is reported to MCP clients at initialization.
const ServerName = "pureflashblade"

// Version is reported to MCP clients and sent as part of the array user agent.
var Version = "0.1.0"

// Server holds the MCP server, its HTTP router and the tool dispatcher.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	router     *chi.Mux
	mcp        *mcp.Server
	dispatcher *Dispatcher
}

// Option customizes New.
type Option func(*Server)

// WithFacadeFactory replaces how facades are built for each call.
func WithFacadeFactory(f FacadeFactory) Option {
	return func(s *Server) { s.dispatcher.newFacade = f }
}

// WithClock replaces the time source used for performance windows.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.dispatcher.now = now }
}

// New constructs a Server with tools registered and routes configured.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.dispatcher = NewDispatcher(s.newFacade, logger)
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: Version}, nil)
	for _, t := range Tools() {
		s.mcp.AddTool(t, s.dispatcher.Handle)
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.With(middleware.Timeout(60*time.Second)).Get("/health", s.handleHealth)

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)
	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Handle("/", streamable)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server { return s.mcp }

// RunStdio serves one MCP session on stdin/stdout until the stream closes or
// ctx is done.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.InfoContext(ctx, "serving MCP over stdio", "name", ServerName, "version", Version)
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("run mcp stdio server: %w", err)
	}
	return nil
}

func (s *Server) newFacade(ctx context.Context, creds Credentials) Invoker {
	return NewFacade(ctx, creds, s.logger, s.clientOptions()...)
}

func (s *Server) clientOptions() []flashblade.Option {
	return []flashblade.Option{
		flashblade.WithVerifyTLS(s.cfg.VerifyTLS),
		flashblade.WithTimeout(s.cfg.Timeout),
		flashblade.WithUserAgent("MCP/" + Version),
	}
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"voidxp/gateway/pkg/auth"
	"voidxp/gateway/pkg/config"
	"voidxp/gateway/pkg/files"
	"voidxp/gateway/pkg/limits/guest"
	"voidxp/gateway/pkg/routing"
	"voidxp/gateway/pkg/search"
	"voidxp/gateway/pkg/server/handlers"
	"voidxp/gateway/pkg/server/middleware"
	"voidxp/gateway/pkg/store"
	"voidxp/gateway/pkg/telemetry/metrics"
)

// Services bundles everything the HTTP layer depends on. Search, Files,
// Store, and Metrics may be nil when the corresponding feature is
// disabled.
type Services struct {
	Routes  *routing.Live
	Guests  *guest.Limiter
	Auth    *auth.Service
	Search  *search.Service
	Files   *files.Processor
	Store   *store.Store
	Metrics *metrics.Collector
}

// Server is the gateway HTTP server.
type Server struct {
	config       *config.Config
	services     Services
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a gateway server.
func NewServer(cfg *config.Config, services Services) *Server {
	return &Server{
		config:       cfg,
		services:     services,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:         s.config.Server.ListenAddress,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server", "address", s.config.Server.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("gateway server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	authHandler := handlers.NewAuthHandler(s.services.Auth)
	invokeHandler := handlers.NewInvokeHandler(
		s.services.Routes,
		s.services.Guests,
		s.services.Auth,
		s.services.Search,
		s.services.Files,
		eventRecorder(s.services.Store),
		requestMetrics(s.services.Metrics),
		nil,
	)

	mux.Handle("/health", handlers.NewHealthHandler())
	mux.HandleFunc("/v1/auth/register", authHandler.Register)
	mux.HandleFunc("/v1/auth/login", authHandler.Login)
	mux.HandleFunc("/v1/auth/anonymous", authHandler.Anonymous)
	mux.Handle("/v1/analytics", handlers.NewAnalyticsHandler(s.services.Store, s.services.Auth))
	mux.Handle("/v1/invoke", invokeHandler)

	if s.services.Metrics != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.services.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.MaxBody(s.config.Server.MaxBodyBytes)(handler)
	handler = middleware.CORS(s.config.Server.CORS)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)
	return handler
}

// eventRecorder converts a possibly-nil *store.Store into the handler
// interface without producing a non-nil interface around a nil pointer.
func eventRecorder(s *store.Store) handlers.EventRecorder {
	if s == nil {
		return nil
	}
	return s
}

func requestMetrics(c *metrics.Collector) handlers.RequestMetrics {
	if c == nil {
		return nil
	}
	return c
}

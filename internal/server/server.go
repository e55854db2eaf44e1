package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"sprint2/internal/config"
	"sprint2/internal/registry"
	"sprint2/pkg/timer"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	mongo    *mongo.Client
	services *Services
	registry registry.ServiceRegistry
	instance registry.Instance
	logger   *zap.Logger
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	sw := timer.NewStopwatch(logger)

	instance, err := registry.NewInstance(cfg)
	if err != nil {
		return nil, err
	}
	reg, err := registry.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	repos, mongoClient, err := InitRepositories(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	sw.Lap("store")

	if err := EnsureIndexes(repos); err != nil {
		disconnect(mongoClient)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	sw.Lap("indexes")

	services := InitServices(cfg, repos, logger)
	handlers := InitHandlers(cfg, services, logger)
	router := setupRouter(cfg, handlers, logger)
	sw.Total("bootstrap")

	return &Server{
		cfg:      cfg,
		router:   router,
		mongo:    mongoClient,
		services: services,
		registry: reg,
		instance: instance,
		logger:   logger,
	}, nil
}

// Connect opens the MongoDB client and pings it within a 10s window.
func Connect(cfg *config.Config, logger *zap.Logger) (*mongo.Client, error) {
	defer timer.Track(logger, "mongo connect")()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		disconnect(client)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

func disconnect(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run serves HTTP and keeps the instance registered until ctx is done, then
// deregisters and drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server listening",
		zap.String("address", ln.Addr().String()),
		zap.String("service", s.cfg.Registry.ServiceName),
		zap.String("store", s.cfg.Store.Driver),
	)

	// A registry outage must not take the service down; the Eureka heartbeat
	// keeps retrying on its own.
	if err := s.registry.Register(ctx, s.instance); err != nil {
		s.logger.Warn("service registration failed", zap.Error(err))
	}

	select {
	case err := <-errCh:
		s.deregister()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.deregister()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) deregister() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.registry.Deregister(ctx, s.instance); err != nil {
		s.logger.Warn("service deregistration failed", zap.Error(err))
	}
}

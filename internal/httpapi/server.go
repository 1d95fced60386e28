// Package httpapi serves the billing view and its actions over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"room-billing/internal/domain"
	"room-billing/internal/usecase"
)

// BillingService is the view the server exposes.
type BillingService interface {
	Dispatch(ctx context.Context, in usecase.Intent) (usecase.Outcome, error)
	Snapshot() domain.ViewSnapshot
	SnapshotWith(f domain.Filter) (domain.ViewSnapshot, error)
	PaymentHistory(ctx context.Context, id domain.PatientID) (*domain.PaymentHistory, error)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP adapter of the billing view
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	service    BillingService
	logger     *zap.Logger
}

// NewServer creates a new HTTP server for the given view
func NewServer(config ServerConfig, service BillingService, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:  config,
		router:  gin.New(),
		service: service,
		logger:  logger,
	}
	server.setupMiddleware()
	server.setupRoutes()
	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware logs one line per request
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (s *Server) setupRoutes() {
	h := NewHandlers(s.service, s.logger)

	s.router.GET("/health", h.HealthCheck)
	s.router.GET("/rooms", h.RoomCards)

	api := s.router.Group("/api")
	{
		api.GET("/rooms", h.ListRooms)
		api.GET("/rooms/export.xlsx", h.ExportRooms)
		api.POST("/reload", h.Reload)
		api.POST("/filter", h.SetFilter)
		api.POST("/payments", h.SubmitPayment)
		api.GET("/patients/:id/payments", h.PaymentHistory)
	}
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Package server exposes the run history over HTTP.
//
// @title s2t run history API
// @version 1.0
// @description Read-only access to recorded transcription runs.
// @BasePath /api/v1
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "speech2text/docs" // generated swagger docs
	"speech2text/internal/api/middleware"
	"speech2text/internal/api/v1/handlers"
	"speech2text/internal/app/logging"
	"speech2text/internal/app/repository"
)

const shutdownTimeout = 10 * time.Second

// Config represents API server configuration
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Release switches gin to release mode.
	Release bool
}

// DefaultConfig listens on localhost only.
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates the router over dao and the HTTP server around it.
func NewServer(config Config, dao repository.TranscriptionDAO, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)
	if config.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	runHandler := handlers.NewRunHandler(dao)
	v1 := router.Group("/api/v1")
	{
		runs := v1.Group("/runs")
		runs.GET("", runHandler.List)
		runs.GET("/:id", runHandler.Get)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "s2t run history",
			"documentation": "/swagger/index.html",
			"endpoints": gin.H{
				"health": "/health",
				"runs":   "/api/v1/runs",
			},
		})
	})

	return &Server{
		config: config,
		router: router,
		httpServer: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("API server started", zap.String("address", s.httpServer.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

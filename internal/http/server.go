// Package http provides the local API server: routing, middleware and health endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applockHTTP "github.com/celox/clipvault/internal/applock/http"
	backupHTTP "github.com/celox/clipvault/internal/backup/http"
	clipsHTTP "github.com/celox/clipvault/internal/clips/http"
	"github.com/celox/clipvault/internal/config"
	"github.com/celox/clipvault/internal/metrics"
)

// ReadinessChecker reports whether the clip database answers queries.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// Server represents the local API server.
type Server struct {
	*service

	db     ReadinessChecker
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new local API server. db may be nil, in which case /ready reports not ready.
func NewServer(
	db ReadinessChecker,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		service: newService("http server", host, port, logger),
		db:      db,
		logger:  logger,
	}
}

// SetupRouter registers middleware and routes. Background work started by the
// middleware stops when ctx is done. metricsProvider may be nil.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	clipHandler *clipsHTTP.ClipHandler,
	backupHandler *backupHTTP.BackupHandler,
	appLockHandler *applockHTTP.AppLockHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	clips := v1.Group("/clips")
	{
		clips.GET("", clipHandler.ListHandler)
		clips.POST("", clipHandler.InsertHandler)
		clips.DELETE("", clipHandler.ClearHandler)
		clips.GET("/latest", clipHandler.LatestHandler)
		clips.POST("/restore", clipHandler.RestoreHandler)
		clips.POST("/batch/pin", clipHandler.BatchPinHandler)
		clips.POST("/batch/delete", clipHandler.BatchDeleteHandler)
		clips.GET("/:id", clipHandler.GetHandler)
		clips.DELETE("/:id", clipHandler.DeleteHandler)
		clips.POST("/:id/toggle-pin", clipHandler.TogglePinHandler)
	}

	backup := v1.Group("/backup")
	{
		backup.POST("/export", backupHandler.ExportHandler)
		backup.POST("/import", backupHandler.ImportHandler)
	}

	lock := v1.Group("/lock")
	{
		lock.GET("", appLockHandler.StatusHandler)
		lock.POST("/enable", appLockHandler.EnableHandler)
		lock.POST("/disable", appLockHandler.DisableHandler)
		lock.POST("/unlock",
			applockHTTP.UnlockRateLimitMiddleware(
				ctx,
				cfg.UnlockRateLimitRequestsPerSec,
				cfg.UnlockRateLimitBurst,
				s.logger,
			),
			appLockHandler.UnlockHandler,
		)
		lock.PUT("/password", appLockHandler.ChangePasswordHandler)
		lock.PUT("/biometric", appLockHandler.BiometricHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports that the process is alive.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the clip database is open and answering.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

// Start serves the router installed by SetupRouter until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	return s.serve(s.router)
}

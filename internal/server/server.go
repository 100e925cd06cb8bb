package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thibault-Renand/OctoPulse/config"
	"github.com/Thibault-Renand/OctoPulse/internal/api"
	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/middleware"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// New creates a new server instance with all routes registered.
func New(cfg *config.Config, db *gorm.DB, cache *database.SummaryCache, clock service.Clock, log *logger.Logger) *Server {
	if config.GetEnvironment() == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORS())

	api.SetupAPI(router, db, cache, clock, log)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		log: log,
	}
}

// Start runs the server until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

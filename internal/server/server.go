// Package server exposes hotspot detection over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TrevorS/hotspot"
	"github.com/TrevorS/hotspot/internal/config"
)

const runIDKey = "run_id"

// Server handles detection requests with the detection settings of its
// configuration as defaults.
type Server struct {
	cfg      config.Server
	defaults hotspot.Config
	stats    *Stats
	router   *gin.Engine
}

// New builds a Server and its routes.
func New(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.Mode)
	s := &Server{
		cfg:      cfg.Server,
		defaults: cfg.Detection.Core(),
		stats:    NewStats(),
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Stats returns the server's detection statistics.
func (s *Server) Stats() *Stats {
	return s.stats
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "hotspot detection service is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/hotspots", s.handleDetect)
		api.GET("/stats", s.handleStats)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

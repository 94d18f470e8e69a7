// Package server exposes the segmentation proxy and dataset export over
// HTTP.
package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/annolab/maskset"
	"github.com/annolab/maskset/internal/config"
	"github.com/annolab/maskset/pkg/client"
)

// Server wires the HTTP routes to the segmentation client and the export
// pipeline.
type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	segmenter client.Segmenter
	exporter  *maskset.Exporter
	log       *zap.Logger
}

// New creates a Server. The segmenter is injected so the routes can be
// exercised without a running segmentation backend.
func New(cfg *config.Config, segmenter client.Segmenter, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
	}))

	s := &Server{
		echo:      e,
		cfg:       cfg,
		segmenter: segmenter,
		exporter:  maskset.New(),
		log:       log,
	}

	e.GET("/healthz", s.handleHealth)
	api := e.Group("/api/v1")
	api.POST("/predict", s.handlePredict)
	api.POST("/export", s.handleExport)

	return s
}

// Start begins serving on the configured address and blocks until the
// server stops.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.cfg.Server.Addr))
	return s.echo.Start(s.cfg.Server.Addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Package server exposes one live map over HTTP.
//
// The server owns a single [canvas.Canvas]. Every handler takes the canvas
// mutex, so the render engine only ever runs on one goroutine at a time.
// Viewport gestures change the transform without re-rendering the scene;
// POST /reload re-reads the workbook and replaces the scene.
//
//	GET  /                 interactive canvas (HTML page with inline SVG)
//	GET  /export.svg       static export, served as an attachment
//	GET  /scene.json       scene geometry plus view state
//	GET  /viewport         current view state
//	POST /viewport/pan     {"dx": 10, "dy": -5}
//	POST /viewport/zoom    {"factor": 2, "cx": 600, "cy": 400} or {"delta_y": -120, ...}
//	POST /viewport/reset   animated return to identity
//	POST /axes/toggle      flip axis visibility
//	POST /reload           rebuild from the workbook
//	GET  /healthz          liveness probe
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/qualmap/pkg/pipeline"
	"github.com/matzehuels/qualmap/pkg/render/canvas"
)

// Server serves one workbook.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger

	// now is swapped in tests to drive the reset animation.
	now func() time.Time

	mu     sync.Mutex
	canvas *canvas.Canvas
}

// New creates a server for the workbook named by opts.Input. Call
// [Server.Load] before serving.
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	opts.Logger = logger
	return &Server{
		runner: runner,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the workbook and builds its scene. On success the live canvas
// shows the new scene with an identity transform; axis visibility carries
// over from the previous scene. On failure the previous scene stays up.
func (s *Server) Load(ctx context.Context) error {
	ds, err := s.runner.Load(ctx, s.opts)
	if err != nil {
		return err
	}
	sc, err := s.runner.BuildScene(ctx, ds, s.opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		s.canvas = canvas.New(sc)
		s.canvas.Viewport().SetAxesVisible(!s.opts.HideAxes)
	} else {
		s.canvas.Replace(sc)
	}
	s.logger.Info("loaded scene", "input", s.opts.Input, "id", sc.ID, "entities", sc.Stats.Entities)
	return nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.requireScene)
		r.Get("/", s.handleIndex)
		r.Get("/export.svg", s.handleExport)
		r.Get("/scene.json", s.handleScene)
		r.Route("/viewport", func(r chi.Router) {
			r.Get("/", s.handleViewport)
			r.Post("/pan", s.handlePan)
			r.Post("/zoom", s.handleZoom)
			r.Post("/reset", s.handleReset)
		})
		r.Post("/axes/toggle", s.handleToggleAxes)
	})
	r.Post("/reload", s.handleReload)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// withCanvas runs fn with the canvas locked, after advancing any running
// reset animation to the current time.
func (s *Server) withCanvas(fn func(c *canvas.Canvas)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Viewport().Advance(s.now())
	fn(s.canvas)
}

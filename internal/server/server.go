// Package server exposes one form session over HTTP. Every request runs to
// completion under a single mutex, so the engine sees events serially.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/engine"
	"github.com/goliatone/go-formstate/pkg/formdef"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

// Config wires a Server.
type Config struct {
	FormID   string
	Chrome   formdef.Chrome
	Engine   *engine.Engine
	Renderer render.Renderer
	Logger   zerolog.Logger
	// Registry receives the form counters. A fresh registry is created when
	// nil.
	Registry *prometheus.Registry
}

// Server serialises HTTP requests onto one engine.
type Server struct {
	mu       sync.Mutex
	engine   *engine.Engine
	formID   string
	chrome   formdef.Chrome
	renderer render.Renderer
	metrics  *Metrics
	registry *prometheus.Registry
	logger   zerolog.Logger
	router   chi.Router
}

// New validates cfg and builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("server: engine is required")
	}
	if cfg.Renderer == nil {
		r, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: html renderer: %w", err)
		}
		cfg.Renderer = r
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		engine:   cfg.Engine,
		formID:   cfg.FormID,
		chrome:   cfg.Chrome,
		renderer: cfg.Renderer,
		metrics:  NewMetrics(cfg.Registry),
		registry: cfg.Registry,
		logger:   cfg.Logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/state", s.handleState)
	r.Post("/fields/{name}", s.handleChange)
	r.Post("/fields/{name}/blur", s.handleBlur)
	r.Post("/submit", s.handleSubmit)
	r.Post("/reset", s.handleReset)
	r.Post("/theme", s.handleTheme)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(html.AssetsFS()))))
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Str("form", s.formID).Msg("serving form")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	view := render.NewView(s.formID, s.engine, s.chrome)
	s.mu.Unlock()

	out, err := s.renderer.Render(r.Context(), view, render.RenderOptions{})
	if err != nil {
		s.logger.Error().Err(err).Msg("render form")
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	_, _ = w.Write(out)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	snap := s.engine.Snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleChange(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value := r.PostFormValue("value")

	s.mu.Lock()
	err := s.engine.Change(name, value)
	s.mu.Unlock()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.metrics.FieldChangesTotal.Inc()
	s.respond(w, r)
}

func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value := r.PostFormValue("value")

	s.mu.Lock()
	err := s.engine.Blur(name, value)
	s.mu.Unlock()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.respond(w, r)
}

// handleSubmit applies any field values posted with the form before
// submitting, so a plain HTML form post behaves like typing then clicking.
// A closed engine is rejected before any value is applied.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	s.mu.Lock()
	if s.engine.Closed() {
		s.mu.Unlock()
		s.writeEngineError(w, engine.ErrClosed)
		return
	}
	var changeErr error
	changes := 0
	for _, name := range s.engine.Schema().Names() {
		if _, posted := r.PostForm[name]; !posted {
			continue
		}
		if changeErr = s.engine.Change(name, r.PostForm.Get(name)); changeErr != nil {
			break
		}
		changes++
	}
	accepted := false
	if changeErr == nil {
		accepted = s.engine.Submit()
	}
	s.mu.Unlock()

	if changeErr != nil {
		s.writeEngineError(w, changeErr)
		return
	}
	s.metrics.FieldChangesTotal.Add(float64(changes))
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	s.metrics.SubmissionsTotal.WithLabelValues(result).Inc()
	s.logger.Info().Str("form", s.formID).Str("result", result).Msg("form submitted")
	s.respond(w, r)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.engine.Reset()
	s.mu.Unlock()
	s.metrics.ResetsTotal.Inc()
	s.respond(w, r)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.engine.ToggleTheme()
	s.mu.Unlock()
	s.metrics.ThemeTogglesTotal.Inc()
	s.respond(w, r)
}

// respond answers API clients with the snapshot and browsers with a redirect
// back to the page.
func (s *Server) respond(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		s.handleState(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownField):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrClosed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("engine error")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return r.URL.Query().Get("format") == "json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func loggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if r.URL.Path == "/metrics" {
				return
			}
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

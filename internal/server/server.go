package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"hubstat/internal/api"
	"hubstat/internal/config"
	"hubstat/internal/feedcache"
	"hubstat/internal/logging"
	"hubstat/internal/metrics"
	"hubstat/internal/pipeline"
	"hubstat/internal/report"
	"hubstat/internal/summary"
)

// Options wires a Server.
type Options struct {
	Bind     string
	Report   config.Report
	Pipeline *pipeline.Pipeline
	Cache    *feedcache.Cache
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
	Clock    clockwork.Clock
}

// Server is the serve-mode HTTP surface over the pipeline.
type Server struct {
	bind     string
	report   config.Report
	pipeline *pipeline.Pipeline
	cache    *feedcache.Cache
	metrics  *metrics.Recorder
	logger   *slog.Logger
	clock    clockwork.Clock

	router   chi.Router
	listener net.Listener
	server   *http.Server
}

// New builds the router. Cache and Metrics are optional.
func New(opts Options) (*Server, error) {
	if opts.Pipeline == nil {
		return nil, errors.New("server pipeline required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Server{
		bind:     strings.TrimSpace(opts.Bind),
		report:   opts.Report,
		pipeline: opts.Pipeline,
		cache:    opts.Cache,
		metrics:  opts.Metrics,
		logger:   logging.NewComponentLogger(logger, "server"),
		clock:    clock,
	}
	s.router = s.routes()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleReport)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleDatasets)
		r.Get("/summary", s.handleSummary)
		r.Post("/refresh", s.handleRefresh)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the bind address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("server bind address required")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("server listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("server listening",
		logging.String("address", listener.Addr().String()),
		logging.String(logging.FieldFeedURL, s.pipeline.Endpoint()),
	)
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting up to five seconds for in-flight requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *Server) load(ctx context.Context) (pipeline.Result, bool) {
	if s.cache == nil {
		return s.pipeline.Run(ctx), false
	}
	return s.cache.Get(ctx, s.pipeline.Endpoint(), s.pipeline.Run)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, _ := s.load(r.Context())
	date := result.FetchedAt
	if date.IsZero() {
		date = s.clock.Now()
	}
	body, err := report.Bytes(report.NewPage(s.report, result, date))
	if err != nil {
		logging.ErrorWithContext(s.logger, "render report failed", "report_render_failed", logging.Error(err))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	etag := report.ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func matchesETag(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	result, cached := s.load(r.Context())
	s.writeJSON(w, http.StatusOK, api.FromTable(result, cached))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, cached := s.load(r.Context())
	sum := summary.Build(result.Table, summary.Options{
		TitleCaseLabels: s.report.TitleCaseLabels,
		WordCloudLimit:  s.report.WordCloudLimit,
	})
	s.writeJSON(w, http.StatusOK, api.FromSummary(result, sum, cached))
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	if s.cache != nil {
		s.cache.Invalidate(s.pipeline.Endpoint())
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, api.Health{
		Status:       "ok",
		Endpoint:     s.pipeline.Endpoint(),
		CacheEnabled: s.cache.Enabled(),
		CacheEntries: s.cache.Len(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("duration", time.Since(start)),
			logging.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Package web serves the to-do screen to a browser. Each page load gets its
// own in-memory session; interactions are Datastar actions answered with SSE
// patches of the #controls and #todos fragments.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/idilsaglam/todo-screen/internal/metrics"
	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/view"
)

//go:generate curl -sSfL -o static/datastar.js https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js

//go:embed templates/*.html static
var assetsFS embed.FS

const (
	// DatastarCDN is the client bundle matching datastar-go v1. Pages load it
	// only when static/datastar.js was not embedded at build time.
	DatastarCDN = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

	datastarPath = "/static/datastar.js"
)

// embeddedDatastar reports whether the client bundle ships in the binary.
func embeddedDatastar() bool {
	b, err := assetsFS.ReadFile("static/datastar.js")
	return err == nil && len(b) > 0
}

type ServerConfig struct {
	Addr        string
	Policy      todo.WarningPolicy
	SessionIdle time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Recorder

	// DatastarURL is where pages load the client bundle from. Empty means
	// the embedded copy, or the CDN when none is embedded.
	DatastarURL string

	// NewIDs returns the item id generator for a new session. Nil means UUIDs.
	NewIDs func() todo.IDGenerator
}

type Server struct {
	cfg      ServerConfig
	tmpl     *template.Template
	log      *slog.Logger
	sessions *sessionStore
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Policy == "" {
		cfg.Policy = todo.WarnLive
	}
	if cfg.SessionIdle <= 0 {
		cfg.SessionIdle = 30 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.DatastarURL = strings.TrimSpace(cfg.DatastarURL); cfg.DatastarURL == "" {
		cfg.DatastarURL = DatastarCDN
		if embeddedDatastar() {
			cfg.DatastarURL = datastarPath
		}
	}

	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	s := &Server{
		cfg:  cfg,
		tmpl: tmpl,
		log:  cfg.Logger,
	}
	s.sessions = newSessionStore(cfg.SessionIdle, s.newController, cfg.Metrics)
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) newController() *todo.Controller {
	opts := []todo.Option{
		todo.WithWarningPolicy(s.cfg.Policy),
		todo.WithObserver(s.cfg.Metrics),
	}
	if s.cfg.NewIDs != nil {
		opts = append(opts, todo.WithIDGenerator(s.cfg.NewIDs()))
	}
	return todo.NewController(opts...)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.cfg.Metrics.Handler())
	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET "+datastarPath, s.handleStatic("static/datastar.js", "application/javascript; charset=utf-8"))
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /s/{sid}/draft", s.handleDraft)
	mux.HandleFunc("POST /s/{sid}/focus", s.handleFocus)
	mux.HandleFunc("POST /s/{sid}/blur", s.handleBlur)
	mux.HandleFunc("POST /s/{sid}/submit", s.handleSubmit)
	mux.HandleFunc("POST /s/{sid}/items/{id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /s/{sid}/items/{id}/remove", s.handleRemove)
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.sessions.janitor(janitorCtx, s.log)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("web: listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("web: shutdown timed out", "err", err)
		return fmt.Errorf("web: shutdown: %w", err)
	}
	s.log.Info("web: shutdown complete")
	return nil
}

type pageVM struct {
	Base        string
	DatastarURL string
	RemoveText  string
	Screen      view.Screen
}

func (s *Server) vm(sid string, screen view.Screen) pageVM {
	return pageVM{
		Base:        "/s/" + sid,
		DatastarURL: s.cfg.DatastarURL,
		RemoveText:  view.RemoveText,
		Screen:      screen,
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil || len(b) == 0 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE responses streaming through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"dur", time.Since(start),
		)
	})
}

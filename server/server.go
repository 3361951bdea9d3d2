package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/zenflow/zenflow/pkg/domain"
	"github.com/zenflow/zenflow/pkg/leadfeed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . FeedController

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	db      Database
	feed    FeedController
	hub     *Hub
	metrics http.Handler
	version string
	debug   bool
	now     func() time.Time

	templates  *template.Template
	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for lead history operations
type Database interface {
	GetRecentLeads(ctx context.Context, limit int) ([]domain.Lead, error)
	CountLeads(ctx context.Context) (int64, error)
	CountLeadsSince(ctx context.Context, since time.Time) (int64, error)
	CountLeadsByDay(ctx context.Context, now time.Time, days int) ([]domain.DayCount, error)
	UpdateLeadStatus(ctx context.Context, uid, status string) error
}

// FeedController is the live lead feed the server reads and ticks on demand
type FeedController interface {
	Snapshot() []domain.Lead
	Tick(ctx context.Context) leadfeed.Decision
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
}

// Deps holds server dependencies. Hub and Metrics are optional.
type Deps struct {
	Config  ConfigProvider
	DB      Database
	Feed    FeedController
	Hub     *Hub
	Metrics http.Handler
	Version string
	Debug   bool
}

// New initializes a new server instance
func New(deps Deps) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		config:    deps.Config,
		db:        deps.DB,
		feed:      deps.Feed,
		hub:       deps.Hub,
		metrics:   deps.Metrics,
		version:   deps.Version,
		debug:     deps.Debug,
		now:       time.Now,
		templates: tmpl,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupRoutes()
	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupRoutes configures middleware and application routes.
// The websocket route stays outside the throttled group, viewers hold their connection for the whole session.
func (s *Server) setupRoutes() {
	s.router.Use(rest.AppInfo("zenflow", "zenflow", s.version), rest.Ping, rest.Recoverer(lgr.Default()))

	s.router.HandleFunc("GET /ws/leads", s.wsHandler)

	s.router.Group().Route(func(web *routegroup.Bundle) {
		if s.debug {
			web.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
		}
		web.Use(rest.Throttle(100), rest.SizeLimit(1024*1024)) // 1MB

		// dashboard pages
		web.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		})
		web.HandleFunc("GET /{page}", s.dashboardHandler)
		web.Handle("GET /static/", http.FileServerFS(staticFS))

		// RSS and metrics
		web.HandleFunc("GET /rss/leads", s.rssHandler)
		if s.metrics != nil {
			web.Handle("GET /metrics", s.metrics)
		}

		// API routes
		web.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
			api.HandleFunc("GET /status", s.statusHandler)
			api.HandleFunc("GET /leads", s.leadsHandler)
			api.HandleFunc("GET /leads/history", s.leadHistoryHandler)
			api.HandleFunc("GET /leads/export", s.exportLeadsHandler)
			api.HandleFunc("PATCH /leads/{id}/status", s.updateLeadStatusHandler)
			api.HandleFunc("GET /stats", s.statsHandler)
			api.HandleFunc("POST /feed/tick", s.tickHandler)
		})
	})
}

// wsHandler attaches a live feed viewer
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		renderError(w, r, errors.New("live feed is disabled"), http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}

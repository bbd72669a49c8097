// Package api provides the HTTP server and handlers for the ShelfTalk application.
package api

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shelftalk/shelftalk-server/internal/ratelimit"
	"github.com/shelftalk/shelftalk-server/internal/service"
)

//go:embed templates/*.html
var templates embed.FS

// Server holds dependencies for HTTP handlers.
type Server struct {
	recommendations *service.RecommendationService
	router          *chi.Mux
	indexTmpl       *template.Template
	submitLimiter   *ratelimit.KeyedLimiter
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(recommendations *service.RecommendationService, logger *slog.Logger) *Server {
	s := &Server{
		recommendations: recommendations,
		router:          chi.NewRouter(),
		indexTmpl:       template.Must(template.ParseFS(templates, "templates/index.html")),
		submitLimiter:   newSubmitLimiter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Get("/", s.handleHome)

	s.router.Group(func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)
		r.Post("/add", s.handleAdd)
		r.Post("/edit", s.handleEdit)
		r.Post("/delete", s.handleDelete)
	})
}

// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"cybernews/internal/classify"
	"cybernews/internal/database"
	"cybernews/internal/feed"
)

// Server exposes the JSON API over a stdlib mux.
type Server struct {
	db         *database.DB
	feeds      *feed.Service
	classifier *classify.Service
	logger     zerolog.Logger

	retentionDays int
	maxArticles   int

	httpServer *http.Server
}

type Config struct {
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	RetentionDays int
	MaxArticles   int
}

func New(cfg Config, db *database.DB, feeds *feed.Service, classifier *classify.Service, logger zerolog.Logger) *Server {
	s := &Server{
		db:            db,
		feeds:         feeds,
		classifier:    classifier,
		logger:        logger.With().Str("component", "server").Logger(),
		retentionDays: cfg.RetentionDays,
		maxArticles:   cfg.MaxArticles,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/feeds/fetch", s.handleFetchFeeds)
	mux.HandleFunc("GET /api/feeds/schedule", s.handleSchedule)
	mux.HandleFunc("GET /api/feeds/sources-by-country", s.handleSourcesByCountry)

	mux.HandleFunc("GET /api/articles", s.handleListArticles)
	mux.HandleFunc("GET /api/articles/sources", s.handleSources)
	mux.HandleFunc("GET /api/articles/categories", s.handleCategories)
	mux.HandleFunc("GET /api/articles/publisher-types", s.handlePublisherTypes)
	mux.HandleFunc("GET /api/articles/countries", s.handleCountries)
	mux.HandleFunc("POST /api/articles/re-categorize", s.handleReCategorize)
	mux.HandleFunc("POST /api/articles/delete-by-source", s.handleDeleteBySource)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/cleanup", s.handleCleanup)

	return s.withCORS(s.withLogging(mux))
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

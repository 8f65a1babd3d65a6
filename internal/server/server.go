// Package server provides the HTTP API for Kotae.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/kotae/internal/cache"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/retrieval"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"go.uber.org/zap"
)

// LLMService is the management surface of the completion client exposed over
// the API. A nil service means no completion backend is configured; the
// answer pipeline then degrades to retrieval-only responses.
type LLMService interface {
	TestConnection(ctx context.Context) llm.ConnectionStatus
	ServiceInfo() llm.ServiceInfo
}

// Server is the HTTP server for the Kotae API.
type Server struct {
	answerer  *retrieval.Answerer
	engine    *search.Engine
	indexer   *indexer.Indexer
	storage   storage.Storage
	cache     *cache.VectorCache
	llm       LLMService
	extractor *extract.Extractor
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. llmService may be
// nil when no completion service is configured.
func NewServer(
	answerer *retrieval.Answerer,
	engine *search.Engine,
	idx *indexer.Indexer,
	storage storage.Storage,
	vectorCache *cache.VectorCache,
	llmService LLMService,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		answerer:  answerer,
		engine:    engine,
		indexer:   idx,
		storage:   storage,
		cache:     vectorCache,
		llm:       llmService,
		extractor: extract.NewExtractor(),
		config:    cfg,
		logger:    logger,
	}
}

// routes builds the router with all API endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/ask", s.handleAsk)
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/documents", s.handleListDocuments)
	r.Post("/api/v1/documents", s.handleCreateDocument)
	r.Get("/api/v1/documents/{id}", s.handleGetDocument)
	r.Delete("/api/v1/documents/{id}", s.handleDeleteDocument)
	r.Get("/api/v1/cache/stats", s.handleCacheStats)
	r.Get("/api/v1/cache/documents", s.handleCacheDocuments)
	r.Post("/api/v1/cache/refresh", s.handleCacheRefresh)
	r.Delete("/api/v1/cache", s.handleCacheClear)
	r.Delete("/api/v1/cache/{id}", s.handleCacheEvict)
	r.Get("/api/v1/llm/info", s.handleLLMInfo)
	r.Post("/api/v1/llm/test", s.handleLLMTest)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

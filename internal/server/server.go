// Package server exposes the ingestion and retrieval pipelines over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"docrag/internal/config"
	"docrag/internal/models"
)

// Ingestor processes one uploaded document.
type Ingestor interface {
	Ingest(ctx context.Context, filename string, data []byte) (*models.DocumentMetadata, error)
}

// Answerer answers a query against the indexed documents.
type Answerer interface {
	Answer(ctx context.Context, query string) (*models.QueryResponse, error)
}

// MetadataLister lists all persisted metadata records.
type MetadataLister interface {
	List(ctx context.Context) ([]models.DocumentMetadata, error)
}

// Server is the HTTP API. It owns only transport concerns; error kinds map to
// status codes here and nowhere else.
type Server struct {
	ingestor Ingestor
	answerer Answerer
	metadata MetadataLister
	cfg      *config.ServerConfig
	logger   zerolog.Logger
	server   *http.Server
}

func NewServer(ingestor Ingestor, answerer Answerer, metadata MetadataLister, cfg *config.ServerConfig, logger zerolog.Logger) *Server {
	return &Server{
		ingestor: ingestor,
		answerer: answerer,
		metadata: metadata,
		cfg:      cfg,
		logger:   logger,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Post("/upload_document", s.handleUpload)
	r.Get("/documents_metadata", s.handleDocumentsMetadata)
	r.Post("/query", s.handleQuery)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info().Str("addr", addr).Msg("Starting server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

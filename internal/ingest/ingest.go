// Package ingest drives the document ingestion pipeline: validate, store
// bytes, extract text, chunk, embed into the vector index, persist metadata.
package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"docrag/internal/chunker"
	"docrag/internal/config"
	"docrag/internal/extract"
	"docrag/internal/filestore"
	"docrag/internal/models"
	"docrag/internal/ragerr"
	"docrag/internal/store"
)

// Indexer is the slice of the vector index the ingestor needs.
type Indexer interface {
	Upsert(ctx context.Context, chunks []models.Chunk) error
}

// Ingestor runs the per-document pipeline. Each call is independent; the only
// shared state is the vector index and the metadata store, and the metadata
// store's unique filename constraint decides races between concurrent uploads
// of the same name.
type Ingestor struct {
	metadata  store.Store
	files     *filestore.Store
	extractor extract.Extractor
	index     Indexer
	cfg       *config.RAGConfig
}

func NewIngestor(metadata store.Store, files *filestore.Store, extractor extract.Extractor, index Indexer, cfg *config.RAGConfig) *Ingestor {
	return &Ingestor{
		metadata:  metadata,
		files:     files,
		extractor: extractor,
		index:     index,
		cfg:       cfg,
	}
}

// Ingest processes one uploaded document and returns its metadata record,
// whose NumChunks reports how many chunks were indexed.
//
// Failures after the file write remove the stored file and leave no metadata
// record. Vector-index entries written before a late failure are not rolled
// back; such entries are unreferenced but remain discoverable by queries.
func (ing *Ingestor) Ingest(ctx context.Context, filename string, data []byte) (*models.DocumentMetadata, error) {
	if filename == "" {
		return nil, ragerr.New(ragerr.KindValidation, "no file name provided in the upload")
	}

	// Document-count ceiling, checked before any file I/O.
	count, err := ing.metadata.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= ing.cfg.MaxDocuments {
		return nil, ragerr.New(ragerr.KindValidation,
			"maximum number of documents (%d) reached, remove existing documents before uploading more", ing.cfg.MaxDocuments)
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".pdf" {
		return nil, ragerr.New(ragerr.KindValidation, "unsupported file type %q, only PDF files are accepted", ext)
	}

	path, err := ing.files.Save(filename, data)
	if err != nil {
		return nil, err
	}

	meta, err := ing.process(ctx, filename, path, data)
	if err != nil {
		if rmErr := ing.files.Remove(filename); rmErr != nil {
			log.Warn().Err(rmErr).Str("filename", filename).Msg("Failed to clean up stored file")
		}
		return nil, err
	}
	return meta, nil
}

// process runs every stage after the file write, so the caller can clean the
// stored file up on any failure.
func (ing *Ingestor) process(ctx context.Context, filename, path string, data []byte) (*models.DocumentMetadata, error) {
	// Page ceiling is checked before full extraction to bound work.
	pageCount, err := ing.extractor.PageCount(ctx, data)
	if err != nil {
		return nil, err
	}
	if pageCount > ing.cfg.MaxPages {
		return nil, ragerr.New(ragerr.KindValidation,
			"document %q has %d pages, exceeding the maximum of %d", filename, pageCount, ing.cfg.MaxPages)
	}

	pages, err := ing.extractor.Pages(ctx, data)
	if err != nil {
		return nil, err
	}
	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ragerr.New(ragerr.KindEmptyContent, "no readable text extracted from %q", filename)
	}

	segments := chunker.Split(text, ing.cfg.ChunkSize, ing.cfg.ChunkOverlap)
	chunks := make([]models.Chunk, 0, len(segments))
	for i, segment := range segments {
		chunks = append(chunks, models.Chunk{
			Source:  filename,
			Index:   i + 1,
			Content: segment,
		})
	}

	if err := ing.index.Upsert(ctx, chunks); err != nil {
		return nil, err
	}

	meta := &models.DocumentMetadata{
		Filename:       filename,
		OriginalSizeKB: int64(len(data)) / 1024,
		NumChunks:      len(chunks),
		Status:         models.StatusProcessed,
		FilePath:       path,
	}
	if err := ing.metadata.Insert(ctx, meta); err != nil {
		return nil, err
	}

	log.Info().
		Str("filename", filename).
		Int("pages", pageCount).
		Int("chunks", len(chunks)).
		Msg("Document ingested")
	return meta, nil
}

// Package vectorindex stores chunk embeddings in a persistent chromem-go
// collection and serves k-nearest-neighbor searches over them.
package vectorindex

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"docrag/internal/embedding"
	"docrag/internal/models"
	"docrag/internal/ragerr"
)

const (
	metaSource     = "source"
	metaChunkIndex = "chunk_index"

	compress = false
)

// Index wraps a chromem-go collection. The backing database is persistent:
// entries written here survive process restarts and are reloaded without
// re-embedding. Writes are serialized by chromem; the index does not
// deduplicate entries.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embedding.Embedder
}

// New opens (or creates) the persistent database at dbPath and the named
// collection inside it.
func New(dbPath, collectionName string, embedder embedding.Embedder) (*Index, error) {
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("open vector database: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, chromem.EmbeddingFunc(embedder.EmbedQuery))
	if err != nil {
		return nil, fmt.Errorf("create/get collection: %w", err)
	}
	return &Index{db: db, collection: collection, embedder: embedder}, nil
}

// Upsert embeds each chunk and stores (vector, content, metadata) entries.
// Entries are not atomic as a batch: a failure partway may leave earlier
// chunks indexed.
func (ix *Index) Upsert(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := ix.embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return ragerr.Wrap(ragerr.KindIndex, err, "embed chunk %d of %q", chunk.Index, chunk.Source)
		}
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("%s-%d", chunk.Source, chunk.Index),
			Content: chunk.Content,
			Metadata: map[string]string{
				metaSource:     chunk.Source,
				metaChunkIndex: strconv.Itoa(chunk.Index),
			},
			Embedding: vector,
		})
	}
	if err := ix.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return ragerr.Wrap(ragerr.KindIndex, err, "add documents to collection")
	}
	return nil
}

// Search embeds the query and returns up to k entries ordered by decreasing
// cosine similarity (equivalently, increasing distance). An empty index
// yields an empty result, not an error.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		return nil, ragerr.New(ragerr.KindValidation, "k must be positive, got %d", k)
	}
	if n := ix.collection.Count(); n < k {
		k = n
	}
	if k == 0 {
		return nil, nil
	}

	vector, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindIndex, err, "embed query")
	}
	results, err := ix.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: vector,
		NResults:       k,
	})
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindIndex, err, "similarity search")
	}

	out := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		chunkIndex, _ := strconv.Atoi(r.Metadata[metaChunkIndex])
		out = append(out, models.SearchResult{
			Content:    r.Content,
			Source:     r.Metadata[metaSource],
			ChunkIndex: chunkIndex,
			Score:      r.Similarity,
		})
	}
	return out, nil
}

// Count reports the number of stored entries.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

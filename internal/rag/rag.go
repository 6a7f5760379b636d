// Package rag answers natural-language queries by retrieving indexed chunks
// and conditioning a generation call on them.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docrag/internal/config"
	"docrag/internal/llmservice"
	"docrag/internal/models"
)

// Searcher is the slice of the vector index the orchestrator needs.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]models.SearchResult, error)
}

// RAG assembles retrieved context into a prompt and invokes the generator.
type RAG struct {
	index     Searcher
	generator llmservice.Generator
	cfg       *config.RAGConfig
}

func NewRAG(index Searcher, generator llmservice.Generator, cfg *config.RAGConfig) *RAG {
	return &RAG{index: index, generator: generator, cfg: cfg}
}

// Answer retrieves the top-k chunks for query and generates a grounded
// response. An empty retrieval short-circuits with a fixed message and no
// generation call. A generation failure carries KindGeneration, distinct from
// retrieval failures.
func (r *RAG) Answer(ctx context.Context, query string) (*models.QueryResponse, error) {
	results, err := r.index.Search(ctx, query, r.cfg.TopK)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		log.Debug().Str("query", query).Msg("No relevant documents for query")
		return &models.QueryResponse{
			Response:        models.NoMatchResponse,
			SourceDocuments: []models.SourceDocument{},
		}, nil
	}

	contextTexts := make([]string, 0, len(results))
	for _, res := range results {
		contextTexts = append(contextTexts, res.Content)
	}
	prompt := BuildPrompt(strings.Join(contextTexts, "\n\n"), query)

	answer, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sources := make([]models.SourceDocument, 0, len(results))
	for _, res := range results {
		sources = append(sources, models.SourceDocument{
			ContentPreview: preview(res.Content, r.cfg.PreviewLen),
			Metadata: models.ChunkMetadata{
				Source:     res.Source,
				ChunkIndex: res.ChunkIndex,
			},
			RelevanceScore: res.Score,
		})
	}

	return &models.QueryResponse{
		Response:        answer,
		SourceDocuments: sources,
	}, nil
}

// BuildPrompt embeds the context block and the verbatim query into the fixed
// answer-from-context-only template.
func BuildPrompt(contextBlock, query string) string {
	return fmt.Sprintf(models.RAGPromptTemplate, contextBlock, query)
}

func preview(content string, maxLen int) string {
	if len(content) > maxLen {
		content = content[:maxLen]
	}
	return content + models.PreviewEllipsis
}

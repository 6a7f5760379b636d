// Package embedding provides the text-to-vector capability used by the
// vector index. The capability is an interface so a local or remote model can
// substitute behind the same contract.
package embedding

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"docrag/internal/config"
)

// Embedder maps text to a fixed-length vector. Implementations must be
// deterministic for fixed model weights: identical text yields an identical
// vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder builds an Embedder against any OpenAI-compatible endpoint
// (OpenAI, OpenRouter, Ollama's compatibility API).
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.Key),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

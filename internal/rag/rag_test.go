package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/config"
	"docrag/internal/models"
	"docrag/internal/ragerr"
)

type fakeSearcher struct {
	results []models.SearchResult
	lastK   int
	err     error
}

func (s *fakeSearcher) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	s.lastK = k
	return s.results, s.err
}

type fakeGenerator struct {
	prompt   string
	response string
	called   bool
	err      error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.called = true
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func testConfig() *config.RAGConfig {
	return &config.RAGConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		TopK:         4,
		MaxDocuments: 20,
		MaxPages:     1000,
		PreviewLen:   200,
	}
}

func TestAnswerNoMatch(t *testing.T) {
	searcher := &fakeSearcher{}
	generator := &fakeGenerator{response: "should not be used"}
	r := NewRAG(searcher, generator, testConfig())

	resp, err := r.Answer(context.Background(), "What is X?")
	require.NoError(t, err)
	assert.Equal(t, models.NoMatchResponse, resp.Response)
	assert.Empty(t, resp.SourceDocuments)
	assert.False(t, generator.called, "no generation call on empty retrieval")
	assert.Equal(t, 4, searcher.lastK)
}

func TestAnswerAssemblesPromptAndSources(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{
		{Content: "X is defined as Y", Source: "doc.pdf", ChunkIndex: 1, Score: 0.97},
		{Content: "more about X", Source: "doc.pdf", ChunkIndex: 2, Score: 0.81},
	}}
	generator := &fakeGenerator{response: "X is Y."}
	r := NewRAG(searcher, generator, testConfig())

	resp, err := r.Answer(context.Background(), "What is X?")
	require.NoError(t, err)
	assert.Equal(t, "X is Y.", resp.Response)

	// The prompt carries the context block and the verbatim query.
	assert.Contains(t, generator.prompt, "X is defined as Y\n\nmore about X")
	assert.Contains(t, generator.prompt, "What is X?")

	require.Len(t, resp.SourceDocuments, 2)
	first := resp.SourceDocuments[0]
	assert.Equal(t, "X is defined as Y...", first.ContentPreview)
	assert.Equal(t, models.ChunkMetadata{Source: "doc.pdf", ChunkIndex: 1}, first.Metadata)
	assert.InDelta(t, 0.97, float64(first.RelevanceScore), 1e-6)
}

func TestAnswerTruncatesPreviews(t *testing.T) {
	long := strings.Repeat("w", 500)
	searcher := &fakeSearcher{results: []models.SearchResult{
		{Content: long, Source: "doc.pdf", ChunkIndex: 1, Score: 0.5},
	}}
	r := NewRAG(searcher, &fakeGenerator{response: "ok"}, testConfig())

	resp, err := r.Answer(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, resp.SourceDocuments, 1)
	assert.Equal(t, long[:200]+models.PreviewEllipsis, resp.SourceDocuments[0].ContentPreview)
}

func TestAnswerGenerationFailure(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{
		{Content: "context", Source: "doc.pdf", ChunkIndex: 1, Score: 0.9},
	}}
	generator := &fakeGenerator{err: ragerr.New(ragerr.KindGeneration, "LLM call failed")}
	r := NewRAG(searcher, generator, testConfig())

	_, err := r.Answer(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, ragerr.KindGeneration, ragerr.KindOf(err))
}

func TestAnswerRetrievalFailure(t *testing.T) {
	searcher := &fakeSearcher{err: ragerr.New(ragerr.KindIndex, "similarity search")}
	generator := &fakeGenerator{response: "unused"}
	r := NewRAG(searcher, generator, testConfig())

	_, err := r.Answer(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, ragerr.KindIndex, ragerr.KindOf(err))
	assert.False(t, generator.called)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("some context", "some question")
	assert.Contains(t, prompt, "Context:\nsome context")
	assert.Contains(t, prompt, "Question: some question")
}

// Package llmservice provides the prompt-to-completion capability used by the
// retrieval orchestrator.
package llmservice

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"docrag/internal/config"
	"docrag/internal/ragerr"
)

// Generator produces a completion for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a Generator backed by an OpenAI-compatible chat endpoint.
type Client struct {
	llm *openai.LLM
}

func NewClient(cfg *config.LLMConfig) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.Key),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm}, nil
}

// Generate sends the prompt as a single human message and returns the first
// choice verbatim.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	res, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", ragerr.Wrap(ragerr.KindGeneration, err, "LLM call failed")
	}
	if len(res.Choices) == 0 {
		return "", ragerr.New(ragerr.KindGeneration, "LLM returned no choices")
	}
	return res.Choices[0].Content, nil
}

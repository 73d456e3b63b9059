package compass

import (
	"context"

	"github.com/sells-group/career-compass/pkg/anthropic"
	"github.com/sells-group/career-compass/pkg/gemini"
	"github.com/sells-group/career-compass/pkg/perplexity"
)

// Generator turns a single prompt into a single text completion.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator generates reports with Gemini.
type GeminiGenerator struct {
	Client gemini.Client
}

// Name implements Generator.
func (g *GeminiGenerator) Name() string { return "gemini" }

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	resp.Usage.Log(resp.Model, "report")
	return resp.Text, nil
}

// AnthropicGenerator generates reports with Claude.
type AnthropicGenerator struct {
	Client    anthropic.Client
	Model     string
	MaxTokens int64
}

// Name implements Generator.
func (g *AnthropicGenerator) Name() string { return "anthropic" }

// Generate implements Generator.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.Model,
		MaxTokens: g.MaxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(g.Model, "report")
	return resp.Text()
}

// PerplexityGenerator generates reports with Perplexity.
type PerplexityGenerator struct {
	Client    perplexity.Client
	MaxTokens int
}

// Name implements Generator.
func (g *PerplexityGenerator) Name() string { return "perplexity" }

// Generate implements Generator.
func (g *PerplexityGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := perplexity.ChatCompletionRequest{
		Messages: []perplexity.Message{{Role: "user", Content: prompt}},
	}
	if g.MaxTokens > 0 {
		maxTokens := g.MaxTokens
		req.MaxTokens = &maxTokens
	}
	resp, err := g.Client.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text()
}

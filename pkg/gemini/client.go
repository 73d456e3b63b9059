// Package gemini provides a single-prompt text generation client for the
// Gemini API.
package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 120 * time.Second
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = eris.New("gemini: empty response")

// Client generates a text completion for a single prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (*Response, error)
}

// Response is a completed generation.
type Response struct {
	Text         string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int32
	CandidatesTokens int32
}

// Log writes token usage with structured zap fields.
func (u Usage) Log(model, phase string) {
	zap.L().Info("token usage",
		zap.String("model", model),
		zap.String("phase", phase),
		zap.Int32("prompt_tokens", u.PromptTokens),
		zap.Int32("candidates_tokens", u.CandidatesTokens),
	)
}

// Option configures the client.
type Option func(*sdkClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *sdkClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *sdkClient) {
		c.baseURL = url
	}
}

// WithTimeout bounds each generation request.
func WithTimeout(d time.Duration) Option {
	return func(c *sdkClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxOutputTokens caps the completion length.
func WithMaxOutputTokens(n int32) Option {
	return func(c *sdkClient) {
		c.maxOutputTokens = n
	}
}

type sdkClient struct {
	models          *genai.Models
	model           string
	baseURL         string
	timeout         time.Duration
	maxOutputTokens int32
}

// NewClient creates a Gemini client backed by google.golang.org/genai.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (Client, error) {
	c := &sdkClient{model: defaultModel, timeout: defaultTimeout}
	for _, o := range opts {
		o(c)
	}

	timeout := c.timeout
	cc := &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL, Timeout: &timeout},
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	c.models = client.Models
	return c, nil
}

func (c *sdkClient) Generate(ctx context.Context, prompt string) (*Response, error) {
	var cfg *genai.GenerateContentConfig
	if c.maxOutputTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: c.maxOutputTokens}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: generate content")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	out := &Response{
		Text:  text,
		Model: c.model,
	}
	if len(resp.Candidates) > 0 {
		out.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CandidatesTokens: resp.UsageMetadata.CandidatesTokenCount,
		}
	}
	return out, nil
}

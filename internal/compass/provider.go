package compass

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/sells-group/career-compass/internal/config"
	"github.com/sells-group/career-compass/pkg/anthropic"
	"github.com/sells-group/career-compass/pkg/gemini"
	"github.com/sells-group/career-compass/pkg/google"
	"github.com/sells-group/career-compass/pkg/jina"
	"github.com/sells-group/career-compass/pkg/perplexity"
)

// NewSearcher builds the configured search provider.
func NewSearcher(cfg *config.Config) (Searcher, error) {
	switch cfg.Search.Provider {
	case config.SearchGoogle:
		var opts []google.Option
		if cfg.Google.BaseURL != "" {
			opts = append(opts, google.WithBaseURL(cfg.Google.BaseURL))
		}
		return &GoogleSearcher{Client: google.NewClient(cfg.Google.Key, cfg.Google.EngineID, opts...)}, nil
	case config.SearchJina:
		var opts []jina.Option
		if cfg.Jina.SearchBaseURL != "" {
			opts = append(opts, jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL))
		}
		return &JinaSearcher{Client: jina.NewClient(cfg.Jina.Key, opts...)}, nil
	default:
		return nil, eris.Errorf("compass: unknown search provider %q", cfg.Search.Provider)
	}
}

// NewGenerator builds the configured generation provider.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.Generation.Provider {
	case config.GenerationGemini:
		client, err := gemini.NewClient(ctx, cfg.Gemini.Key,
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithMaxOutputTokens(int32(cfg.Generation.MaxTokens)),
		)
		if err != nil {
			return nil, eris.Wrap(err, "compass: init gemini")
		}
		return &GeminiGenerator{Client: client}, nil
	case config.GenerationAnthropic:
		return &AnthropicGenerator{
			Client:    anthropic.NewClient(cfg.Anthropic.Key, option.WithRequestTimeout(120*time.Second)),
			Model:     cfg.Anthropic.Model,
			MaxTokens: int64(cfg.Generation.MaxTokens),
		}, nil
	case config.GenerationPerplexity:
		var opts []perplexity.Option
		if cfg.Perplexity.BaseURL != "" {
			opts = append(opts, perplexity.WithBaseURL(cfg.Perplexity.BaseURL))
		}
		opts = append(opts, perplexity.WithModel(cfg.Perplexity.Model))
		return &PerplexityGenerator{
			Client:    perplexity.NewClient(cfg.Perplexity.Key, opts...),
			MaxTokens: cfg.Generation.MaxTokens,
		}, nil
	default:
		return nil, eris.Errorf("compass: unknown generation provider %q", cfg.Generation.Provider)
	}
}

// New wires an Analyzer from configuration.
func New(ctx context.Context, cfg *config.Config) (*Analyzer, error) {
	searcher, err := NewSearcher(cfg)
	if err != nil {
		return nil, err
	}
	generator, err := NewGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	collector := NewCollector(searcher, cfg.Search.ResultsPerQuery, time.Duration(cfg.Search.DelayMs)*time.Millisecond)
	return NewAnalyzer(collector, generator, cfg.Search.Location), nil
}

package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Search providers.
const (
	SearchGoogle = "google"
	SearchJina   = "jina"
)

// Generation providers.
const (
	GenerationGemini     = "gemini"
	GenerationAnthropic  = "anthropic"
	GenerationPerplexity = "perplexity"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Google     GoogleConfig     `yaml:"google" mapstructure:"google"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int             `yaml:"port" mapstructure:"port"`
	CORSOrigins []string        `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimitConfig configures the per-client request quota for /analyze.
type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled" mapstructure:"enabled"`
	Requests      int  `yaml:"requests" mapstructure:"requests"`
	WindowMinutes int  `yaml:"window_minutes" mapstructure:"window_minutes"`
}

// SearchConfig configures evidence collection.
type SearchConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	ResultsPerQuery int    `yaml:"results_per_query" mapstructure:"results_per_query"`
	DelayMs         int    `yaml:"delay_ms" mapstructure:"delay_ms"`
	Location        string `yaml:"location" mapstructure:"location"`
}

// GoogleConfig holds Google Custom Search credentials.
type GoogleConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	EngineID string `yaml:"engine_id" mapstructure:"engine_id"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// JinaConfig holds Jina AI search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// GenerationConfig selects and bounds the report generator.
type GenerationConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// secretEnv lists credentials with the environment variables that may supply
// them, in precedence order. The unprefixed names are the ones the service has
// always been deployed with.
var secretEnv = map[string][]string{
	"google.key":       {"COMPASS_GOOGLE_KEY", "SEARCH_API_KEY"},
	"google.engine_id": {"COMPASS_GOOGLE_ENGINE_ID", "SEARCH_ENGINE_ID"},
	"jina.key":         {"COMPASS_JINA_KEY", "JINA_API_KEY"},
	"gemini.key":       {"COMPASS_GEMINI_KEY", "GEMINI_API_KEY"},
	"anthropic.key":    {"COMPASS_ANTHROPIC_KEY", "ANTHROPIC_API_KEY"},
	"perplexity.key":   {"COMPASS_PERPLEXITY_KEY", "PERPLEXITY_API_KEY"},
	"server.port":      {"COMPASS_SERVER_PORT", "PORT"},
}

// Load reads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range secretEnv {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests", 10)
	v.SetDefault("server.rate_limit.window_minutes", 60)
	v.SetDefault("search.provider", SearchGoogle)
	v.SetDefault("search.results_per_query", 3)
	v.SetDefault("search.delay_ms", 500)
	v.SetDefault("search.location", "")
	v.SetDefault("google.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("generation.provider", GenerationGemini)
	v.SetDefault("generation.max_tokens", 8192)
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar-pro")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is complete for the given mode
// ("serve" or "analyze"). All problems are reported together.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit.Enabled {
			if c.Server.RateLimit.Requests <= 0 {
				errs = append(errs, "server.rate_limit.requests must be > 0")
			}
			if c.Server.RateLimit.WindowMinutes <= 0 {
				errs = append(errs, "server.rate_limit.window_minutes must be > 0")
			}
		}
	case "analyze":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Search.Provider {
	case SearchGoogle:
		if c.Google.Key == "" {
			errs = append(errs, "google.key is required")
		}
		if c.Google.EngineID == "" {
			errs = append(errs, "google.engine_id is required")
		}
	case SearchJina:
		if c.Jina.Key == "" {
			errs = append(errs, "jina.key is required")
		}
	default:
		errs = append(errs, "search.provider must be one of google, jina")
	}

	if c.Search.ResultsPerQuery < 1 || c.Search.ResultsPerQuery > 10 {
		errs = append(errs, "search.results_per_query must be between 1 and 10")
	}
	if c.Search.DelayMs < 0 {
		errs = append(errs, "search.delay_ms must be >= 0")
	}

	switch c.Generation.Provider {
	case GenerationGemini:
		if c.Gemini.Key == "" {
			errs = append(errs, "gemini.key is required")
		}
	case GenerationAnthropic:
		if c.Anthropic.Key == "" {
			errs = append(errs, "anthropic.key is required")
		}
	case GenerationPerplexity:
		if c.Perplexity.Key == "" {
			errs = append(errs, "perplexity.key is required")
		}
	default:
		errs = append(errs, "generation.provider must be one of gemini, anthropic, perplexity")
	}

	if c.Generation.MaxTokens <= 0 {
		errs = append(errs, "generation.max_tokens must be > 0")
	}

	if len(errs) > 0 {
		return eris.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

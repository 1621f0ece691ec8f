package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMissingRequired     = errors.New("missing required configuration")
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
)

type Config struct {
	// Knowledge base
	CacheDir       string `envconfig:"CACHE_DIR" default:"./cache"`
	FreshnessHours int    `envconfig:"FRESHNESS_HOURS" default:"24"`
	RetrievalTopK  int    `envconfig:"RETRIEVAL_TOP_K" default:"3"`
	MaxPapers      int    `envconfig:"MAX_PAPERS" default:"5"`
	MaxArticles    int    `envconfig:"MAX_ARTICLES" default:"10"`

	// Model providers
	LLMProvider  string `envconfig:"LLM_PROVIDER" default:"ollama"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OllamaHost   string `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`

	// External sources
	NewsAPIKey   string `envconfig:"NEWS_API_KEY"`
	ArxivBaseURL string `envconfig:"ARXIV_BASE_URL" default:"https://export.arxiv.org/api/query"`
	NewsBaseURL  string `envconfig:"NEWS_BASE_URL" default:"https://newsapi.org/v2/everything"`
	MarketURL    string `envconfig:"MARKET_URL" default:"https://query1.finance.yahoo.com/v8/finance/chart"`

	// Translation
	TranslateURL   string `envconfig:"TRANSLATE_URL"`
	SourceLanguage string `envconfig:"SOURCE_LANGUAGE" default:"en"`

	// Image generation
	ImageHost string `envconfig:"IMAGE_HOST"`

	// NSQ
	NSQLookupd string `envconfig:"NSQ_LOOKUPD" default:"nsqlookupd:4161"`
	NSQDHost   string `envconfig:"NSQD_HOST" default:"nsqd:4150"`
	NSQDHTTP   string `envconfig:"NSQD_HTTP" default:"nsqd:4151"`

	// Toggles
	EnableAPI           bool `envconfig:"ENABLE_API" default:"true"`
	EnableRefreshWorker bool `envconfig:"ENABLE_REFRESH_WORKER" default:"false"`

	// Server
	ServerPort   int    `envconfig:"SERVER_PORT" default:"8081"`
	QueryLogPath string `envconfig:"QUERY_LOG_PATH" default:"data/logs/query.log"`
}

func Load() (*Config, error) {
	// Env vars may also come from the shell, so a missing .env is fine.
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	_ = godotenv.Load(filepath.Join(cwd, "../.env"))

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fails eagerly on anything the pipeline would otherwise only
// discover mid-request: an unknown provider or a provider without its key.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("%w: CACHE_DIR", ErrMissingRequired)
	}

	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingRequired)
		}
	case "ollama":
		if c.OllamaHost == "" {
			return fmt.Errorf("%w: OLLAMA_HOST", ErrMissingRequired)
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedProvider, c.LLMProvider)
	}

	if c.FreshnessHours <= 0 {
		return fmt.Errorf("%w: FRESHNESS_HOURS must be positive", ErrMissingRequired)
	}

	return nil
}

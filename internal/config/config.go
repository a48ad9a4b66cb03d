// Package config provides configuration loading and validation for the CLI,
// the API server and the worker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds every setting the commands read. All fields are optional;
// missing values use Defaults or must be provided via CLI flags.
type Config struct {
	// Storage. DatabaseURL and SQLitePath are mutually exclusive.
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Local example database
	RedisURL    string `json:"redis_url,omitempty"`    // L2 embedding cache

	// Providers
	EmbeddingProvider string `json:"embedding_provider,omitempty"` // gemini or openai
	EmbeddingModel    string `json:"embedding_model,omitempty"`
	LLMProvider       string `json:"llm_provider,omitempty"` // gemini or openai
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`
	OpenAIAPIKey      string `json:"openai_api_key,omitempty"`
	OpenAIBaseURL     string `json:"openai_base_url,omitempty"`

	// Retrieval and labeling
	SimilarityLimit  int     `json:"similarity_limit,omitempty"`
	MinSimilarity    float64 `json:"min_similarity,omitempty"`
	LabelConcurrency int     `json:"label_concurrency,omitempty"`

	// API server
	Addr           string  `json:"addr,omitempty"`
	RateLimitRPS   float64 `json:"rate_limit_rps,omitempty"`
	RateLimitBurst int     `json:"rate_limit_burst,omitempty"`

	// Worker
	RabbitMQURL string   `json:"rabbitmq_url,omitempty"`
	WorkerCount int      `json:"worker_count,omitempty"`
	S3          S3Config `json:"s3,omitempty"`

	// Logging
	Debug    bool `json:"debug,omitempty"`
	JSONLogs bool `json:"json_logs,omitempty"`
}

// S3Config addresses an S3-compatible bucket holding resume files.
type S3Config struct {
	Endpoint     string `json:"endpoint,omitempty"` // empty means AWS
	Region       string `json:"region,omitempty"`
	Bucket       string `json:"bucket,omitempty"`
	AccessKey    string `json:"access_key,omitempty"`
	SecretKey    string `json:"secret_key,omitempty"`
	UsePathStyle bool   `json:"use_path_style,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		EmbeddingProvider: "gemini",
		LLMProvider:       "gemini",
		SimilarityLimit:   10,
		MinSimilarity:     0.5,
		LabelConcurrency:  5,
		Addr:              ":8080",
		RateLimitRPS:      5,
		RateLimitBurst:    10,
		WorkerCount:       3,
		S3:                S3Config{Region: "auto"},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Load reads the optional file at path, overlays the environment and fills
// the remaining gaps from Defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overwrites fields with any non-empty environment variable.
// Malformed numbers are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, err := strconv.Atoi(strings.TrimSpace(getenv(key))); err == nil {
			*dst = v
		}
	}
	number := func(key string, dst *float64) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(getenv(key)), 64); err == nil {
			*dst = v
		}
	}

	str("DATABASE_URL", &c.DatabaseURL)
	str("SQLITE_PATH", &c.SQLitePath)
	str("REDIS_URL", &c.RedisURL)
	str("EMBEDDING_PROVIDER", &c.EmbeddingProvider)
	str("EMBEDDING_MODEL", &c.EmbeddingModel)
	str("LLM_PROVIDER", &c.LLMProvider)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	str("OPENAI_API_KEY", &c.OpenAIAPIKey)
	str("OPENAI_BASE_URL", &c.OpenAIBaseURL)
	number("MIN_SIMILARITY", &c.MinSimilarity)
	integer("SIMILARITY_LIMIT", &c.SimilarityLimit)
	str("ADDR", &c.Addr)
	number("RATE_LIMIT_RPS", &c.RateLimitRPS)
	integer("RATE_LIMIT_BURST", &c.RateLimitBurst)
	str("RABBITMQ_URL", &c.RabbitMQURL)
	integer("WORKER_COUNT", &c.WorkerCount)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_REGION", &c.S3.Region)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv("S3_USE_PATH_STYLE"))); err == nil {
		c.S3.UsePathStyle = v
	}
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the command that needs them.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}
	for _, p := range []struct{ name, value string }{
		{"embedding_provider", c.EmbeddingProvider},
		{"llm_provider", c.LLMProvider},
	} {
		switch strings.ToLower(p.value) {
		case "", "gemini", "openai":
		default:
			return fmt.Errorf("config error: '%s' must be gemini or openai, got %q", p.name, p.value)
		}
	}
	if c.MinSimilarity < -1 || c.MinSimilarity > 1 {
		return fmt.Errorf("config error: 'min_similarity' must be between -1 and 1")
	}
	if c.SimilarityLimit < 0 {
		return fmt.Errorf("config error: 'similarity_limit' must be non-negative")
	}
	if c.LabelConcurrency < 0 {
		return fmt.Errorf("config error: 'label_concurrency' must be non-negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("config error: 'worker_count' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.RedisURL, defaults.RedisURL)
	mergeString(&result.EmbeddingProvider, defaults.EmbeddingProvider)
	mergeString(&result.EmbeddingModel, defaults.EmbeddingModel)
	mergeString(&result.LLMProvider, defaults.LLMProvider)
	mergeString(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	mergeString(&result.OpenAIAPIKey, defaults.OpenAIAPIKey)
	mergeString(&result.OpenAIBaseURL, defaults.OpenAIBaseURL)
	mergeString(&result.Addr, defaults.Addr)
	mergeString(&result.RabbitMQURL, defaults.RabbitMQURL)
	mergeString(&result.S3.Endpoint, defaults.S3.Endpoint)
	mergeString(&result.S3.Region, defaults.S3.Region)
	mergeString(&result.S3.Bucket, defaults.S3.Bucket)
	mergeString(&result.S3.AccessKey, defaults.S3.AccessKey)
	mergeString(&result.S3.SecretKey, defaults.S3.SecretKey)
	// A configured PostgreSQL URL disables the SQLite default.
	if result.DatabaseURL == "" {
		mergeString(&result.SQLitePath, defaults.SQLitePath)
	}

	if result.SimilarityLimit == 0 {
		result.SimilarityLimit = defaults.SimilarityLimit
	}
	if result.LabelConcurrency == 0 {
		result.LabelConcurrency = defaults.LabelConcurrency
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}
	if result.WorkerCount == 0 {
		result.WorkerCount = defaults.WorkerCount
	}
	if result.MinSimilarity == 0 {
		result.MinSimilarity = defaults.MinSimilarity
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// APIKey returns the key configured for a provider name.
func (c *Config) APIKey(provider string) string {
	if strings.EqualFold(provider, "openai") {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// UsePostgres reports whether examples live in PostgreSQL.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

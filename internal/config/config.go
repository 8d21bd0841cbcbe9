package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hirelens/screening-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Ingest    IngestConfig    `yaml:"ingest" mapstructure:"ingest"`
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string           `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string           `yaml:"database_url" mapstructure:"database_url"`
	Pool        store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// ExtractConfig configures the evidence extraction layer.
type ExtractConfig struct {
	RequestsPerMinute int  `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	CacheTTLHours     int  `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	CacheCapacity     int  `yaml:"cache_capacity" mapstructure:"cache_capacity"`
	HeuristicFallback bool `yaml:"heuristic_fallback" mapstructure:"heuristic_fallback"`
}

// IngestConfig configures PDF resume ingestion.
type IngestConfig struct {
	// OCRProvider selects how PDF resumes are turned into text:
	// "local" (pdftotext) or "mistral" (OCR API, handles scans).
	OCRProvider   string `yaml:"ocr_provider" mapstructure:"ocr_provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MistralKey    string `yaml:"mistral_key" mapstructure:"mistral_key"`
}

// EngineConfig configures scoring behavior.
type EngineConfig struct {
	// WeightsPath optionally points to a YAML seniority weight profile that
	// overrides the built-in weight vectors.
	WeightsPath string `yaml:"weights_path" mapstructure:"weights_path"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentCandidates int `yaml:"max_concurrent_candidates" mapstructure:"max_concurrent_candidates"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that the fields a given mode depends on are present and in
// range. Modes: "score", "extract", "batch", "serve".
func (c *Config) Validate(mode string) error {
	var problems []string

	requireDB := func() {
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	}
	requireKey := func() {
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
	}
	checkConcurrency := func() {
		n := c.Batch.MaxConcurrentCandidates
		if n < 1 || n > 50 {
			problems = append(problems, "batch.max_concurrent_candidates must be between 1 and 50")
		}
	}

	switch mode {
	case "score":
		requireDB()
	case "extract":
		requireDB()
		requireKey()
	case "batch":
		requireDB()
		requireKey()
		checkConcurrency()
	case "serve":
		requireDB()
		checkConcurrency()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "screening.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent_candidates", 5)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 6000)
	v.SetDefault("anthropic.temperature", 0.2)
	v.SetDefault("extract.requests_per_minute", 50)
	v.SetDefault("extract.cache_ttl_hours", 24)
	v.SetDefault("extract.cache_capacity", 256)
	v.SetDefault("extract.heuristic_fallback", true)
	v.SetDefault("ingest.ocr_provider", "local")

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

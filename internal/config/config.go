package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Congress   CongressConfig   `yaml:"congress" mapstructure:"congress"`
	OpenStates OpenStatesConfig `yaml:"openstates" mapstructure:"openstates"`
	Civic      CivicConfig      `yaml:"civic" mapstructure:"civic"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	RateLimit  RateLimitConfig  `yaml:"ratelimit" mapstructure:"ratelimit"`
	Relevance  RelevanceConfig  `yaml:"relevance" mapstructure:"relevance"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CongressConfig holds the federal bill API settings.
type CongressConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// OpenStatesConfig holds the state legislature API settings.
type OpenStatesConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// CivicConfig holds the local civic data API settings.
type CivicConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds the impact analysis settings.
type AnthropicConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	Model         string `yaml:"model" mapstructure:"model"`
	MaxConcurrent int    `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// CacheConfig configures the source caches.
type CacheConfig struct {
	// Backend is "memory" or "sqlite".
	Backend       string `yaml:"backend" mapstructure:"backend"`
	Path          string `yaml:"path" mapstructure:"path"`
	TTLMinutes    int    `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
	CivicTTLHours int    `yaml:"civic_ttl_hours" mapstructure:"civic_ttl_hours"`
	MaxEntries    int    `yaml:"max_entries" mapstructure:"max_entries"`
}

// RateLimitConfig configures the upstream quota guard.
type RateLimitConfig struct {
	// Mode is "demo" or "standard".
	Mode    string `yaml:"mode" mapstructure:"mode"`
	PerHour int    `yaml:"per_hour" mapstructure:"per_hour"`
	PerDay  int    `yaml:"per_day" mapstructure:"per_day"`
}

// RelevanceConfig configures the scorer.
type RelevanceConfig struct {
	// WeightsFile optionally overrides the built-in factor weights.
	WeightsFile string `yaml:"weights_file" mapstructure:"weights_file"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CIVICFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("congress.base_url", "https://api.congress.gov/v3")
	v.SetDefault("openstates.base_url", "https://v3.openstates.org")
	v.SetDefault("civic.base_url", "https://www.googleapis.com/civicinfo/v2")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_concurrent", 8)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.path", "civicfeed-cache.db")
	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("cache.civic_ttl_hours", 2)
	v.SetDefault("cache.max_entries", 256)
	v.SetDefault("ratelimit.mode", "demo")
	v.SetDefault("ratelimit.per_hour", 10)
	v.SetDefault("ratelimit.per_day", 40)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks the settings a given entry point depends on.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
	case "feed":
		// Every credential is optional; the pipeline degrades to sample
		// content without them.
	}

	if c.RateLimit.Mode != "demo" && c.RateLimit.Mode != "standard" {
		problems = append(problems, "ratelimit.mode must be demo or standard")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "sqlite" {
		problems = append(problems, "cache.backend must be memory or sqlite")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Env        string
	Port       string
	Log        LogConfig
	LLM        LLMConfig
	Search     SearchConfig
	Generation GenerationConfig
	Metrics    MetricsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type LLMConfig struct {
	Provider    string // "openai" or "gemini"
	APIKey      string
	BaseURL     string // Optional: custom OpenAI-compatible endpoint
	Model       string
	SearchModel string // Model used for web-search augmented generation (openai only)
	Temperature float64
	MaxTokens   int
}

type SearchConfig struct {
	Enabled bool
}

type GenerationConfig struct {
	Timeout time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-2.5-flash-lite",
}

// flagKeys maps server command-line flags onto config keys.
var flagKeys = map[string]string{
	"port":      "port",
	"provider":  "llm.provider",
	"model":     "llm.model",
	"log-level": "log.level",
	"search":    "search.enabled",
}

// Load reads configuration from the environment. In development a .env file
// in the working directory is loaded first. Flags that were explicitly set
// on the command line take precedence over the environment.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("env", "development")
	if strings.ToLower(envOr(v, "env", "APP_ENV")) == "development" {
		_ = godotenv.Load()
	}

	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.search_model", "gpt-4o-mini-search-preview")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("search.enabled", true)
	v.SetDefault("generation.timeout", 90*time.Second)
	v.SetDefault("metrics.enabled", true)

	bindings := map[string]string{
		"env":                "APP_ENV",
		"port":               "PORT",
		"log.level":          "LOG_LEVEL",
		"log.format":         "LOG_FORMAT",
		"llm.provider":       "LLM_PROVIDER",
		"llm.api_key":        "LLM_API_KEY",
		"llm.openai_api_key": "OPENAI_API_KEY",
		"llm.gemini_api_key": "GEMINI_API_KEY",
		"llm.base_url":       "LLM_BASE_URL",
		"llm.model":          "LLM_MODEL",
		"llm.search_model":   "LLM_SEARCH_MODEL",
		"llm.temperature":    "LLM_TEMPERATURE",
		"llm.max_tokens":     "LLM_MAX_TOKENS",
		"search.enabled":     "SEARCH_ENABLED",
		"generation.timeout": "GENERATION_TIMEOUT",
		"metrics.enabled":    "METRICS_ENABLED",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := Config{
		Env:  strings.ToLower(v.GetString("env")),
		Port: v.GetString("port"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     v.GetString("llm.base_url"),
			Model:       v.GetString("llm.model"),
			SearchModel: v.GetString("llm.search_model"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
		},
		Search: SearchConfig{
			Enabled: v.GetBool("search.enabled"),
		},
		Generation: GenerationConfig{
			Timeout: v.GetDuration("generation.timeout"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
		},
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		}
	}

	switch cfg.LLM.Provider {
	case ProviderOpenAI:
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = v.GetString("llm.openai_api_key")
		}
	case ProviderGemini:
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = v.GetString("llm.gemini_api_key")
		}
	default:
		return Config{}, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[cfg.LLM.Provider]
	}

	if cfg.LLM.APIKey == "" {
		return Config{}, fmt.Errorf("an API key is required: set LLM_API_KEY or %s", providerKeyEnv(cfg.LLM.Provider))
	}

	if cfg.Generation.Timeout <= 0 {
		return Config{}, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", cfg.Generation.Timeout)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func providerKeyEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func envOr(v *viper.Viper, key, env string) string {
	_ = v.BindEnv(key, env)
	return v.GetString(key)
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and passed by value to constructors.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	DefaultEngine string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	PromptDir     string

	LanguageToolURL      string
	LanguageToolLanguage string
	LanguageToolUsername string
	LanguageToolAPIKey   string

	RequestTimeout  time.Duration
	CritiqueTimeout time.Duration

	DatabaseURL     string
	GrammarCacheTTL time.Duration

	TelegramBotToken string
	CORSOrigin       string
}

// env names per key; keys are also valid in the YAML config file
var envs = map[string]string{
	"port":                  "PORT",
	"log.level":             "LOG_LEVEL",
	"log.format":            "LOG_FORMAT",
	"default_engine":        "DEFAULT_LLM",
	"openai.api_key":        "OPENAI_API_KEY",
	"openai.base_url":       "OPENAI_API_BASE",
	"openai.model":          "OPENAI_MODEL",
	"gemini.api_key":        "GEMINI_API_KEY",
	"gemini.model":          "GEMINI_MODEL",
	"prompt_dir":            "PROMPT_DIR",
	"languagetool.url":      "LANGUAGETOOL_URL",
	"languagetool.language": "LANGUAGETOOL_LANGUAGE",
	"languagetool.username": "LANGUAGETOOL_USERNAME",
	"languagetool.api_key":  "LANGUAGETOOL_API_KEY",
	"timeouts.request":      "REQUEST_TIMEOUT",
	"timeouts.critique":     "CRITIQUE_TIMEOUT",
	"database_url":          "DATABASE_URL",
	"grammar_cache_ttl":     "GRAMMAR_CACHE_TTL",
	"telegram.token":        "TELEGRAM_BOT_TOKEN",
	"cors_origin":           "CORS_ORIGIN",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("default_engine", "gpt")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("languagetool.url", "https://api.languagetool.org")
	v.SetDefault("languagetool.language", "en-US")
	v.SetDefault("timeouts.request", 60*time.Second)
	v.SetDefault("timeouts.critique", 45*time.Second)
	v.SetDefault("grammar_cache_ttl", 24*time.Hour)
	v.SetDefault("cors_origin", "*")
}

// Load reads defaults, the optional config file and the environment, in
// increasing priority.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	for key, env := range envs {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return FromViper(v), nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{
		Port:      strings.TrimSpace(v.GetString("port")),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),

		DefaultEngine: strings.ToLower(strings.TrimSpace(v.GetString("default_engine"))),

		OpenAIAPIKey:  strings.TrimSpace(v.GetString("openai.api_key")),
		OpenAIBaseURL: strings.TrimSpace(v.GetString("openai.base_url")),
		OpenAIModel:   strings.TrimSpace(v.GetString("openai.model")),
		GeminiAPIKey:  strings.TrimSpace(v.GetString("gemini.api_key")),
		GeminiModel:   strings.TrimSpace(v.GetString("gemini.model")),
		PromptDir:     strings.TrimSpace(v.GetString("prompt_dir")),

		LanguageToolURL:      strings.TrimSpace(v.GetString("languagetool.url")),
		LanguageToolLanguage: strings.TrimSpace(v.GetString("languagetool.language")),
		LanguageToolUsername: strings.TrimSpace(v.GetString("languagetool.username")),
		LanguageToolAPIKey:   strings.TrimSpace(v.GetString("languagetool.api_key")),

		RequestTimeout:  v.GetDuration("timeouts.request"),
		CritiqueTimeout: v.GetDuration("timeouts.critique"),

		DatabaseURL:     strings.TrimSpace(v.GetString("database_url")),
		GrammarCacheTTL: v.GetDuration("grammar_cache_ttl"),

		TelegramBotToken: strings.TrimSpace(v.GetString("telegram.token")),
		CORSOrigin:       v.GetString("cors_origin"),
	}
}

// Validate checks that the configured default engine can actually serve.
func (c *Config) Validate() error {
	var errs []error
	if c.OpenAIAPIKey == "" && c.GeminiAPIKey == "" {
		errs = append(errs, errors.New("no critique engine configured: set OPENAI_API_KEY or GEMINI_API_KEY"))
	}
	switch c.DefaultEngine {
	case "gpt", "openai":
		if c.OpenAIAPIKey == "" && c.GeminiAPIKey != "" {
			errs = append(errs, errors.New("default engine gpt requires OPENAI_API_KEY"))
		}
	case "gemini":
		if c.GeminiAPIKey == "" && c.OpenAIAPIKey != "" {
			errs = append(errs, errors.New("default engine gemini requires GEMINI_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown default engine %q; use 'gpt' or 'gemini'", c.DefaultEngine))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.CritiqueTimeout <= 0 {
		errs = append(errs, errors.New("critique timeout must be positive"))
	}
	return errors.Join(errs...)
}

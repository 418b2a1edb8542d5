package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scop-vc/enrich-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Specter   SpecterConfig   `yaml:"specter" mapstructure:"specter"`
	Apollo    ApolloConfig    `yaml:"apollo" mapstructure:"apollo"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Enrich    EnrichConfig    `yaml:"enrich" mapstructure:"enrich"`
	Owners    []model.Owner   `yaml:"owners" mapstructure:"owners"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SpecterConfig holds the primary directory provider settings.
type SpecterConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ApolloConfig holds the secondary directory provider settings.
type ApolloConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds the reasoning provider settings.
type AnthropicConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	HaikuModel string `yaml:"haiku_model" mapstructure:"haiku_model"`
}

// GeminiConfig holds the web-grounded investor lookup settings.
type GeminiConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// EnrichConfig tunes the enrichment pipeline itself.
type EnrichConfig struct {
	FounderConcurrency  int      `yaml:"founder_concurrency" mapstructure:"founder_concurrency"`
	InvestorConcurrency int      `yaml:"investor_concurrency" mapstructure:"investor_concurrency"`
	TopInvestors        int      `yaml:"top_investors" mapstructure:"top_investors"`
	FounderTitles       []string `yaml:"founder_titles" mapstructure:"founder_titles"`
	InvestorDenylist    []string `yaml:"investor_denylist" mapstructure:"investor_denylist"`
	PlaybookPath        string   `yaml:"playbook_path" mapstructure:"playbook_path"`
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

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("specter.base_url", "https://app.tryspecter.com/api/v1")
	v.SetDefault("specter.timeout_secs", 30)
	v.SetDefault("apollo.base_url", "https://api.apollo.io/api/v1")
	v.SetDefault("apollo.timeout_secs", 30)
	v.SetDefault("anthropic.haiku_model", "claude-haiku-4-5-20251001")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("enrich.founder_concurrency", 4)
	v.SetDefault("enrich.investor_concurrency", 3)
	v.SetDefault("enrich.top_investors", 3)
	v.SetDefault("enrich.founder_titles", []string{
		"CEO", "CTO", "Founder", "Co-Founder", "Co-founder", "co-founder", "founder",
	})
	v.SetDefault("enrich.investor_denylist", []string{"y combinator", "yc"})

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

	if len(cfg.Owners) == 0 {
		cfg.Owners = DefaultOwners()
	}

	return &cfg, nil
}

// DefaultOwners is the built-in owner table, used when no owners are
// configured. Order matters: list source tags are matched against keys
// in this order.
func DefaultOwners() []model.Owner {
	return []model.Owner{
		{
			Key:            "james",
			Email:          "james@scopvc.com",
			DisplayName:    "James",
			SignatureName:  "James",
			SchedulingLink: "https://calendly.com/james-scopvc/30min",
		},
		{
			Key:            "zi",
			Email:          "zi@scopvc.com",
			DisplayName:    "Zi",
			SignatureName:  "Zi",
			SchedulingLink: "https://calendly.com/zi-scopvc/zoom-w-zi-scop-venture-capital",
		},
	}
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

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	StaticDir    string `mapstructure:"STATIC_DIR"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	ResearchModel string `mapstructure:"RESEARCH_MODEL"`
	ImageModel    string `mapstructure:"IMAGE_MODEL"`
	SupportModel  string `mapstructure:"SUPPORT_MODEL"`
	OllamaURL     string `mapstructure:"OLLAMA_URL"`
	OllamaModel   string `mapstructure:"OLLAMA_MODEL"`

	FreeMessageLimit      int           `mapstructure:"FREE_MESSAGE_LIMIT"`
	SimulatedWordDelay    time.Duration `mapstructure:"SIMULATED_WORD_DELAY"`
	BackgroundTaskTimeout time.Duration `mapstructure:"BACKGROUND_TASK_TIMEOUT"`
	ImageContextTurns     int           `mapstructure:"IMAGE_CONTEXT_TURNS"`
	TitleMaxRunes         int           `mapstructure:"TITLE_MAX_RUNES"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/ufai.db")
	viper.SetDefault("STORE_DRIVER", StoreSQLite)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("STATIC_DIR", "")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("RESEARCH_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("IMAGE_MODEL", "gemini-2.5-flash-image")
	viper.SetDefault("SUPPORT_MODEL", "gemini-2.5-flash")
	viper.SetDefault("OLLAMA_URL", "")
	viper.SetDefault("OLLAMA_MODEL", "llama3")
	viper.SetDefault("FREE_MESSAGE_LIMIT", 6)
	viper.SetDefault("SIMULATED_WORD_DELAY", "40ms")
	viper.SetDefault("BACKGROUND_TASK_TIMEOUT", "60s")
	viper.SetDefault("IMAGE_CONTEXT_TURNS", 4)
	viper.SetDefault("TITLE_MAX_RUNES", 30)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.AppPort <= 0 || c.AppPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("APP_PORT %d is out of range", c.AppPort))
	}
	switch c.StoreDriver {
	case StoreSQLite:
		if c.DatabasePath == "" {
			result = multierror.Append(result, fmt.Errorf("DATABASE_PATH is required for the sqlite store"))
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			result = multierror.Append(result, fmt.Errorf("REDIS_ADDR is required for the redis store"))
		}
	case StoreMemory:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.FreeMessageLimit < 0 {
		result = multierror.Append(result, fmt.Errorf("FREE_MESSAGE_LIMIT must not be negative"))
	}
	if c.SimulatedWordDelay < 0 {
		result = multierror.Append(result, fmt.Errorf("SIMULATED_WORD_DELAY must not be negative"))
	}
	if c.BackgroundTaskTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("BACKGROUND_TASK_TIMEOUT must be positive"))
	}
	if c.ImageContextTurns < 0 {
		result = multierror.Append(result, fmt.Errorf("IMAGE_CONTEXT_TURNS must not be negative"))
	}
	if c.TitleMaxRunes <= 0 {
		result = multierror.Append(result, fmt.Errorf("TITLE_MAX_RUNES must be positive"))
	}
	return result.ErrorOrNil()
}

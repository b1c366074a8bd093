// Package config loads settings from an optional YAML file, a .env file
// and MATHHELPER_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/mathhelper/internal/llm"
	"github.com/abhisek/mathhelper/internal/skill"
)

// EnvPrefix is prepended to every environment override, e.g.
// MATHHELPER_DATABASE_DRIVER for database.driver.
const EnvPrefix = "MATHHELPER"

// Config is the application configuration.
type Config struct {
	Env     string  `mapstructure:"env"`     // "production" selects JSON logs
	Student string  `mapstructure:"student"` // progress is kept per student
	DB      DB      `mapstructure:"database"`
	Session Session `mapstructure:"session"`
	LLM     LLM     `mapstructure:"llm"`
}

// DB selects the progress store.
type DB struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`    // file path for sqlite, URL for postgres
}

// Session holds defaults for new sessions.
type Session struct {
	Tier string `mapstructure:"tier"`

	// Seed fixes question order when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// LLM configures the optional review note provider.
type LLM struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("student", "default")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("session.tier", skill.TierEasy.String())
	v.SetDefault("session.seed", 0)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.max_attempts", d.Retry.MaxAttempts)
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the working directory and the user config
// directory, and its absence is not an error.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "mathhelper"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.DB.Driver)
	}
	if c.DB.Driver == "postgres" && c.DB.DSN == "" {
		return errors.New("database.dsn is required for postgres")
	}
	if strings.TrimSpace(c.Student) == "" {
		return errors.New("student must not be empty")
	}
	return c.LLMConfig().Validate()
}

// Tier is the default tier. Unknown names mean Easy.
func (c *Config) Tier() skill.Tier {
	return skill.ParseTier(c.Session.Tier)
}

// LLMConfig converts the llm section, falling back to vendor API key
// variables when no provider is named.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.APIKey = c.LLM.APIKey
	cfg.Model = c.LLM.Model
	cfg.BaseURL = c.LLM.BaseURL
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	if c.LLM.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	cfg, _ = llm.Discover(cfg, os.Getenv)
	return cfg
}

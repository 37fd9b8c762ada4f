package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "http://localhost:8000/api"
	DefaultTimeout = 10 * time.Second
)

// Config holds all client configuration.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Logger  LoggerConfig
}

type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables throttling
	UserAgent string
}

type SessionConfig struct {
	Path      string
	Ephemeral bool // keep the session in memory only
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	File         string
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"api-url":   "api.base_url",
	"timeout":   "api.timeout",
	"session":   "session.path",
	"ephemeral": "session.ephemeral",
	"log-level": "logger.level",
	"log-file":  "logger.file",
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., $HOME/.notespace.
// A .env file in the working directory is applied to the environment first;
// API_URL there (or in the environment) overrides api.base_url.
// Flags set on flags take precedence over everything else.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".notespace"))
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.API.BaseURL = viper.GetString("api.base_url")
	if apiURL := viper.GetString("api_url"); apiURL != "" && !flagChanged(flags, "api-url") {
		cfg.API.BaseURL = apiURL
	}
	cfg.API.Timeout = viper.GetDuration("api.timeout")
	cfg.API.RateLimit = viper.GetFloat64("api.rate_limit")
	cfg.API.UserAgent = viper.GetString("api.user_agent")

	cfg.Session.Path = viper.GetString("session.path")
	cfg.Session.Ephemeral = viper.GetBool("session.ephemeral")
	if cfg.Session.Path == "" && !cfg.Session.Ephemeral {
		path, err := defaultSessionPath()
		if err != nil {
			return nil, err
		}
		cfg.Session.Path = path
	}

	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.Logger.File = viper.GetString("logger.file")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the client cannot run without.
func (cfg *Config) Validate() error {
	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}
	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %v", cfg.API.RateLimit)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", DefaultBaseURL)
	viper.SetDefault("api.timeout", DefaultTimeout)
	viper.SetDefault("api.rate_limit", 0)
	viper.SetDefault("api.user_agent", "notespace-cli/1.0")
	viper.SetDefault("session.ephemeral", false)
	viper.SetDefault("logger.level", "warn")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
}

func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate a config directory for the session file, set session.path: %w", err)
	}
	return filepath.Join(dir, "notespace", "session.json"), nil
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	return flags != nil && flags.Changed(name)
}

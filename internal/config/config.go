// Package config loads the settings of the command line client.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/frankli0324/go-jsonrpc/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// URL of the JSON-RPC server, see simplehttp.Builder.URL.
	URL string `mapstructure:"url"`
	// User for basic authentication. empty disables it.
	User string `mapstructure:"user"`
	// Password for basic authentication.
	Password string `mapstructure:"password"`
	// CookieFile is read for basic authentication credentials, e.g. bitcoind's .cookie.
	CookieFile string `mapstructure:"cookie_file"`
	// Timeout of a whole call (e.g., "15s").
	Timeout string `mapstructure:"timeout"`
	// RateLimit is the maximum number of calls per second, 0 for no limit.
	RateLimit float64 `mapstructure:"rate_limit"`
	// Output is the result format, "json" or "yaml".
	Output string `mapstructure:"output"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`

	// ParsedTimeout is the parsed call timeout.
	ParsedTimeout time.Duration `mapstructure:"-"`
	// Cookie is the trimmed content of CookieFile.
	Cookie string `mapstructure:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-"`
}

const (
	// DefaultConfigFilename is read from the working directory when no file is given.
	DefaultConfigFilename = ".jsonrpc-cli.yaml"

	DefaultURL      = "http://127.0.0.1:8332/"
	DefaultTimeout  = "15s"
	DefaultOutput   = "json"
	DefaultLogLevel = "info"
)

// Static error definitions for better error handling.
var (
	ErrEmptyURL            = errors.New("url cannot be empty")
	ErrInvalidTimeout      = errors.New("timeout must be positive")
	ErrUnknownLogLevel     = errors.New("unknown log level")
	ErrUnknownOutput       = errors.New("output must be json or yaml")
	ErrInvalidRateLimit    = errors.New("rate_limit cannot be negative")
	ErrConflictingAuth     = errors.New("user and cookie_file are mutually exclusive")
	ErrEmptyCookieFile     = errors.New("cookie file is empty")
	ErrConfigFileNotExists = errors.New("config file does not exist")
)

func defaults(v *viper.Viper) {
	v.SetDefault("url", DefaultURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("rate_limit", 0)
}

// LoadConfig loads configuration settings from a YAML file. with an empty
// filename, DefaultConfigFilename is used if present, defaults otherwise.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	defaults(v)

	if configFilename == "" {
		if _, err := os.Stat(DefaultConfigFilename); err == nil {
			configFilename = DefaultConfigFilename
		}
	} else if _, err := os.Stat(configFilename); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileNotExists, configFilename)
	}

	if configFilename != "" {
		v.SetConfigFile(configFilename)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.URL == "" {
		return ErrEmptyURL
	}

	var err error

	cfg.ParsedTimeout, err = time.ParseDuration(cfg.Timeout)
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Output != "json" && cfg.Output != "yaml" {
		return fmt.Errorf("%w: '%s'", ErrUnknownOutput, cfg.Output)
	}

	if cfg.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if cfg.CookieFile == "" {
		return nil
	}

	if cfg.User != "" {
		return ErrConflictingAuth
	}

	content, err := os.ReadFile(cfg.CookieFile)
	if err != nil {
		return fmt.Errorf("failed to read cookie file: %w", err)
	}

	cfg.Cookie = strings.TrimSpace(string(content))
	if cfg.Cookie == "" {
		return fmt.Errorf("%w: %s", ErrEmptyCookieFile, cfg.CookieFile)
	}

	return nil
}

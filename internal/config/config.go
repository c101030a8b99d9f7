package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/album-grabber/internal/constants"
	"github.com/oshokin/album-grabber/internal/logger"
	"github.com/oshokin/album-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// OutputPath is the root folder; every album gets its own subfolder inside it.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	// Quality selects which download link of a track page is used: "low" (first) or "high" (last).
	Quality string `mapstructure:"quality" yaml:"quality"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// MaxConcurrentDownloads is the number of tracks processed at the same time.
	// 1 keeps the strictly sequential behavior.
	MaxConcurrentDownloads int64 `mapstructure:"max_concurrent_downloads" yaml:"max_concurrent_downloads"`
	// RequestTimeout limits a single HTTP request, "0s" disables the limit.
	RequestTimeout string `mapstructure:"request_timeout" yaml:"request_timeout"`
	// UserAgent overrides the User-Agent header. Empty keeps the HTTP client default.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// MaxLogLength limits the size of request/response dumps written at debug level (e.g. "1MB").
	MaxLogLength string `mapstructure:"max_log_length" yaml:"max_log_length"`
	// DryRun resolves every download link without writing anything to disk.
	DryRun bool `mapstructure:"-" yaml:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" yaml:"-"`
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration `mapstructure:"-" yaml:"-"`
	// ParsedMaxLogLength is the parsed dump size limit in bytes.
	ParsedMaxLogLength uint64 `mapstructure:"-" yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".album-grabber.yaml"

	// DefaultOutputPath is the root folder for downloaded albums.
	DefaultOutputPath = "/downloads"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged HTTP dump.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// QualityLow selects the first (smallest, lossy) download link.
	QualityLow = "low"
	// QualityHigh selects the last (largest, lossless) download link.
	QualityHigh = "high"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyOutputPath indicates that no output folder was configured.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrInvalidQuality indicates that the quality setting is invalid.
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidConcurrentDownloads indicates that the concurrent downloads count is invalid.
	ErrInvalidConcurrentDownloads = errors.New("max concurrent downloads must be a positive integer")
	// ErrInvalidRequestTimeout indicates that the request timeout is negative.
	ErrInvalidRequestTimeout = errors.New("request_timeout cannot be negative")
	// ErrConfigFileExists indicates that a default config would overwrite an existing file.
	ErrConfigFileExists = errors.New("config file already exists")
)

// DefaultConfig returns the configuration used when no file or flag says otherwise.
func DefaultConfig() *Config {
	return &Config{
		OutputPath:             DefaultOutputPath,
		Quality:                QualityLow,
		LogLevel:               "info",
		MaxConcurrentDownloads: 1,
		RequestTimeout:         "0s",
		UserAgent:              "",
		MaxLogLength:           "1MB",
	}
}

// LoadConfig loads configuration settings from a YAML file on top of the defaults.
// An empty filename means the default file, which may be absent.
// A file named explicitly must exist.
func LoadConfig(configFilename string) (*Config, error) {
	isOptional := configFilename == ""
	if isOptional {
		configFilename = DefaultConfigFilename
	}

	v := viper.New()
	registerDefaults(v)

	exists, err := utils.IsPathExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	switch {
	case exists:
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	case !isOptional:
		return nil, fmt.Errorf("failed to read config from file: %w: %s", os.ErrNotExist, configFilename)
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	if cfg.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	cfg.Quality = strings.ToLower(strings.TrimSpace(cfg.Quality))
	if cfg.Quality != QualityLow && cfg.Quality != QualityHigh {
		return fmt.Errorf("%w: '%s', must be '%s' or '%s'", ErrInvalidQuality, cfg.Quality, QualityLow, QualityHigh)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if cfg.MaxConcurrentDownloads <= 0 {
		return ErrInvalidConcurrentDownloads
	}

	cfg.ParsedRequestTimeout = 0

	if requestTimeout := strings.TrimSpace(cfg.RequestTimeout); requestTimeout != "" {
		timeout, err := time.ParseDuration(requestTimeout)
		if err != nil {
			return fmt.Errorf("failed to parse request timeout: %w", err)
		}

		if timeout < 0 {
			return ErrInvalidRequestTimeout
		}

		cfg.ParsedRequestTimeout = timeout
	}

	cfg.ParsedMaxLogLength = DefaultMaxLogLength

	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" && maxLogLength != "0" {
		parsed, err := humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}

		cfg.ParsedMaxLogLength = parsed
	}

	return nil
}

// WriteDefaultConfig writes DefaultConfig to path as YAML.
// An existing file is never overwritten.
func WriteDefaultConfig(path string) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	exists, err := utils.IsPathExist(path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrConfigFileExists, path)
	}

	var buffer bytes.Buffer

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)

	if err = encoder.Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = encoder.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create config folder: %w", err)
		}
	}

	if err = os.WriteFile(path, buffer.Bytes(), constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func registerDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("quality", defaults.Quality)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("max_concurrent_downloads", defaults.MaxConcurrentDownloads)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("max_log_length", defaults.MaxLogLength)
}

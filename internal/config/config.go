package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete arffview configuration
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServiceConfig controls how the remote processing service is reached
type ServiceConfig struct {
	// Endpoint is the base URL of the processing service.
	// The upload path (/api/process/) is appended to it.
	Endpoint string `mapstructure:"endpoint"`
	// TimeoutSeconds is the HTTP request timeout for an upload, covering
	// the full request/response cycle (0 = no timeout)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// Contract forces one dataset_info response shape when the server
	// sends both. Options: "" (auto-detect), "stratify", "shape"
	Contract string `mapstructure:"contract"`
}

// UploadConfig controls file acquisition and validation
type UploadConfig struct {
	// Extension is the required file name suffix (case-sensitive match)
	Extension string `mapstructure:"extension"`
	// MaxSizeBytes rejects larger files before uploading; the service
	// enforces the same cap server-side (0 = unlimited)
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
	// DropDir, when set, is watched for new dataset files; dropping a
	// file into it selects that file, the terminal analog of drag-and-drop
	DropDir string `mapstructure:"drop_dir"`
}

// OutputConfig controls where rendered artifacts are written
type OutputConfig struct {
	// HistogramDir is where decoded histogram images are saved
	HistogramDir string `mapstructure:"histogram_dir"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is the log level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file (empty = stderr)
	Dir string `mapstructure:"dir"`
}

// Timeout returns the service timeout as a duration.
func (c ServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint:       "http://localhost:8000",
			TimeoutSeconds: 120,
			Contract:       "",
		},
		Upload: UploadConfig{
			Extension:    ".arff",
			MaxSizeBytes: 10 * 1024 * 1024,
			DropDir:      "",
		},
		Output: OutputConfig{
			HistogramDir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
	}
}

// SetDefaults registers all default values with viper
func SetDefaults() {
	defaults := Default()

	// Service defaults
	viper.SetDefault("service.endpoint", defaults.Service.Endpoint)
	viper.SetDefault("service.timeout_seconds", defaults.Service.TimeoutSeconds)
	viper.SetDefault("service.contract", defaults.Service.Contract)

	// Upload defaults
	viper.SetDefault("upload.extension", defaults.Upload.Extension)
	viper.SetDefault("upload.max_size_bytes", defaults.Upload.MaxSizeBytes)
	viper.SetDefault("upload.drop_dir", defaults.Upload.DropDir)

	// Output defaults
	viper.SetDefault("output.histogram_dir", defaults.Output.HistogramDir)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load unmarshals and validates the current viper configuration
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arffview")
	}
	// Fall back to ~/.config/arffview
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arffview"
	}
	return filepath.Join(home, ".config", "arffview")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console
type Config struct {
	// Console HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Remote records API configuration
	API APIConfig `mapstructure:"api"`

	// Session persistence configuration
	Session SessionConfig `mapstructure:"session"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`

	// Monitoring configuration
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig holds the console server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// APIConfig holds the upstream REST API configuration
type APIConfig struct {
	// BaseURL includes the /api prefix, e.g. http://localhost:5000/api
	BaseURL string `mapstructure:"base_url"`
	// Timeout is the transport timeout in seconds; 0 disables it and
	// a hung request then stays in flight until the server gives up
	Timeout int `mapstructure:"timeout"`
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	// StateFile is the key/value store backing the session across
	// console restarts
	StateFile string `mapstructure:"state_file"`
}

// MonitoringConfig holds monitoring configuration
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
	HealthPath  string `mapstructure:"health_path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/hms-console")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideWithEnv(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	// API defaults
	viper.SetDefault("api.base_url", "http://localhost:5000/api")
	viper.SetDefault("api.timeout", 30)

	// Session defaults
	viper.SetDefault("session.state_file", ".hms-console-session.json")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
	viper.SetDefault("monitoring.health_path", "/health")

	// Logging defaults
	viper.SetDefault("log_level", "info")
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}

	if stateFile := os.Getenv("SESSION_STATE_FILE"); stateFile != "" {
		config.Session.StateFile = stateFile
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if _, err := url.Parse(config.API.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if config.Session.StateFile == "" {
		return fmt.Errorf("session state file is required")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the airport daemon
type Config struct {
	AirportName       string
	LayoutPath        string
	DBPath            string
	BatchSize         int
	BatchTimeout      int // seconds
	AutoReadyInterval int // seconds
	StrictTransitions bool
	Log               LogConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("airport_name", "Demo International")
	v.SetDefault("layout_path", "")
	v.SetDefault("db_path", "airport_ops.db")
	v.SetDefault("batch_size", 100)
	v.SetDefault("batch_timeout", 5)
	v.SetDefault("auto_ready_interval", 10)
	v.SetDefault("strict_transitions", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/airport_ops")
	v.AddConfigPath(".")

	// An explicit path (set by the -config flag in main) wins over the search paths
	if configPath := os.Getenv("AIRPORT_OPS_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults + env vars
	}

	v.SetEnvPrefix("AIRPORT_OPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		AirportName:       v.GetString("airport_name"),
		LayoutPath:        v.GetString("layout_path"),
		DBPath:            v.GetString("db_path"),
		BatchSize:         v.GetInt("batch_size"),
		BatchTimeout:      v.GetInt("batch_timeout"),
		AutoReadyInterval: v.GetInt("auto_ready_interval"),
		StrictTransitions: v.GetBool("strict_transitions"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.AirportName == "" && cfg.LayoutPath == "" {
		return fmt.Errorf("airport_name or layout_path is required")
	}

	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0")
	}

	if cfg.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be greater than 0")
	}

	if cfg.AutoReadyInterval <= 0 {
		return fmt.Errorf("auto_ready_interval must be greater than 0")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the daemon
type Config struct {
	ListenAddr      string
	DBPath          string
	SpecCSVPath     string // Optional fleet table seed, used when the spec table is empty
	AirportsCSVPath string // Optional diversion airport seed, used when the catalogue is empty
	ReloadInterval  int    // seconds between spec table reloads
	Diversion       DiversionConfig
	Log             LogConfig
}

// DiversionConfig holds the gate clearance assumed at every diversion alternate
type DiversionConfig struct {
	MaxWingspan float64
	MaxLength   float64
	MaxHeight   float64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string // When set, logs rotate through this file instead of stdout
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "airbus_twin.db")
	v.SetDefault("spec_csv_path", "")
	v.SetDefault("airports_csv_path", "")
	v.SetDefault("reload_interval", 60)
	v.SetDefault("diversion.max_wingspan", 80.0)
	v.SetDefault("diversion.max_length", 80.0)
	v.SetDefault("diversion.max_height", 30.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/airbus_twin")
	v.AddConfigPath(".")

	if configPath := os.Getenv("AIRBUS_TWIN_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults and environment only
	}

	v.SetEnvPrefix("AIRBUS_TWIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ListenAddr:      v.GetString("listen_addr"),
		DBPath:          v.GetString("db_path"),
		SpecCSVPath:     v.GetString("spec_csv_path"),
		AirportsCSVPath: v.GetString("airports_csv_path"),
		ReloadInterval:  v.GetInt("reload_interval"),
		Diversion: DiversionConfig{
			MaxWingspan: v.GetFloat64("diversion.max_wingspan"),
			MaxLength:   v.GetFloat64("diversion.max_length"),
			MaxHeight:   v.GetFloat64("diversion.max_height"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}

	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.ReloadInterval <= 0 {
		return fmt.Errorf("reload_interval must be greater than 0")
	}

	if cfg.Diversion.MaxWingspan <= 0 || cfg.Diversion.MaxLength <= 0 || cfg.Diversion.MaxHeight <= 0 {
		return fmt.Errorf("diversion clearances must be greater than 0")
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

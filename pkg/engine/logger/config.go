package logger

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	Format         string `yaml:"format"` // text or json
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig returns the configuration used when nothing is set.
// Generation output goes to stdout, so logs default to WARN on stderr.
func DefaultConfig() Config {
	return Config{
		Level:          "WARN",
		Format:         "text",
		FileEnabled:    false,
		FilePath:       "logs/gridforge.log",
		FileMaxSizeMB:  10,
		FileMaxBackups: 3,
		FileMaxAgeDays: 14,
	}
}

// Merge overlays the non-zero fields of c onto base
func (c Config) Merge(base Config) Config {
	out := base
	if c.Level != "" {
		out.Level = c.Level
	}
	if c.Format != "" {
		out.Format = c.Format
	}
	if c.FileEnabled {
		out.FileEnabled = true
	}
	if c.FilePath != "" {
		out.FilePath = c.FilePath
	}
	if c.FileMaxSizeMB > 0 {
		out.FileMaxSizeMB = c.FileMaxSizeMB
	}
	if c.FileMaxBackups > 0 {
		out.FileMaxBackups = c.FileMaxBackups
	}
	if c.FileMaxAgeDays > 0 {
		out.FileMaxAgeDays = c.FileMaxAgeDays
	}
	return out
}

// LoadConfig reads the `logging:` section of a YAML file and applies
// environment variable overrides. An empty path yields defaults plus env.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return config, fmt.Errorf("read logging config: %w", err)
		}
		var wrapper struct {
			Logging Config `yaml:"logging"`
		}
		if err := yaml.Unmarshal(data, &wrapper); err != nil {
			return config, fmt.Errorf("parse logging config: %w", err)
		}
		config = wrapper.Logging.Merge(config)
	}

	return ApplyEnv(config), nil
}

// ApplyEnv applies GRIDFORGE_LOG_* environment overrides
func ApplyEnv(config Config) Config {
	if level := os.Getenv("GRIDFORGE_LOG_LEVEL"); level != "" {
		config.Level = level
	}
	if format := os.Getenv("GRIDFORGE_LOG_FORMAT"); format != "" {
		config.Format = format
	}
	if fileEnabled := os.Getenv("GRIDFORGE_LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			config.FileEnabled = enabled
		}
	}
	if filePath := os.Getenv("GRIDFORGE_LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}
	return config
}

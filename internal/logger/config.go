package logger

import (
	"os"
	"strconv"
)

// Config holds logging configuration. It is embedded in the main config
// file under the logging: key.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig returns console-only INFO logging.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FilePath:       "logs/delve.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// ApplyEnv overrides config fields from LOG_* environment variables.
func (c *Config) ApplyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Level = level
	}
	if format := os.Getenv("LOG_CONSOLE_FORMAT"); format != "" {
		c.ConsoleFormat = format
	}
	if enabled := os.Getenv("LOG_FILE_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			c.FileEnabled = b
		}
	}
	if path := os.Getenv("LOG_FILE_PATH"); path != "" {
		c.FilePath = path
	}
}

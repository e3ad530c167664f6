package app

import (
	"fmt"
	"strings"
)

// Config holds the process-level settings for an App instance.
type Config struct {
	// ConfigPaths are HCL files or directories merged over the defaults.
	ConfigPaths []string
	// ClassName overrides the class name from the configuration files.
	ClassName string

	LogFormat string
	LogLevel  string
}

// NewConfig normalizes and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatText
	}
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	var paths []string
	for _, p := range cfg.ConfigPaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	cfg.ConfigPaths = paths
	return &cfg, nil
}

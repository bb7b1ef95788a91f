package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKLIST_* environment variables and
// updates source tracking.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("TASKLIST_STORE", "store", &cfg.Store)
	setString("TASKLIST_DATA_DIR", "data_dir", &cfg.DataDir)
	setString("TASKLIST_KEY", "key", &cfg.Key)
	setString("TASKLIST_SCHEMA", "schema_file", &cfg.SchemaFile)

	// Logging configuration
	setString("TASKLIST_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TASKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
